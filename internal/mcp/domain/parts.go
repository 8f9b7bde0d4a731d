package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// validPartTypes are the part types PartsBox accepts on creation.
var validPartTypes = map[string]bool{
	"local":        true,
	"linked":       true,
	"sub-assembly": true,
	"meta":         true,
}

// PartListInput scopes a list tool to one part.
type PartListInput struct {
	PartID string `json:"part_id" jsonschema:"the part identifier"`
	ListInput
}

// GetPartInput identifies a single part.
type GetPartInput struct {
	PartID string `json:"part_id" jsonschema:"the part identifier"`
}

// CreatePartInput carries the fields accepted by part creation. Optional
// fields are pointers so an explicit empty value can still be sent.
type CreatePartInput struct {
	Name                string         `json:"name" jsonschema:"the part name (required)"`
	PartType            string         `json:"part_type,omitempty" jsonschema:"part type: local, linked, sub-assembly or meta (default local)"`
	Description         *string        `json:"description,omitempty" jsonschema:"part description"`
	Notes               *string        `json:"notes,omitempty" jsonschema:"user notes, Markdown supported"`
	Footprint           *string        `json:"footprint,omitempty" jsonschema:"physical package footprint"`
	Manufacturer        *string        `json:"manufacturer,omitempty" jsonschema:"manufacturer name"`
	MPN                 *string        `json:"mpn,omitempty" jsonschema:"manufacturer part number"`
	Tags                []string       `json:"tags,omitempty" jsonschema:"list of tags"`
	CadKeys             []string       `json:"cad_keys,omitempty" jsonschema:"CAD keys for matching"`
	LowStockThreshold   *int           `json:"low_stock_threshold,omitempty" jsonschema:"report when stock falls below this level"`
	AttritionPercentage *float64       `json:"attrition_percentage,omitempty" jsonschema:"attrition percentage for manufacturing"`
	AttritionQuantity   *int           `json:"attrition_quantity,omitempty" jsonschema:"fixed attrition quantity for manufacturing"`
	CustomFields        map[string]any `json:"custom_fields,omitempty" jsonschema:"custom field values"`
}

// UpdatePartInput carries a part identifier plus the fields to change. Nil
// fields are left untouched; tags and cad_keys replace the existing lists.
type UpdatePartInput struct {
	PartID              string         `json:"part_id" jsonschema:"the part identifier (required)"`
	Name                *string        `json:"name,omitempty" jsonschema:"new part name"`
	Description         *string        `json:"description,omitempty" jsonschema:"new description"`
	Notes               *string        `json:"notes,omitempty" jsonschema:"new notes, Markdown supported"`
	Footprint           *string        `json:"footprint,omitempty" jsonschema:"new footprint"`
	Manufacturer        *string        `json:"manufacturer,omitempty" jsonschema:"new manufacturer name"`
	MPN                 *string        `json:"mpn,omitempty" jsonschema:"new manufacturer part number"`
	Tags                []string       `json:"tags,omitempty" jsonschema:"new list of tags, replaces the existing list"`
	CadKeys             []string       `json:"cad_keys,omitempty" jsonschema:"new CAD keys, replaces the existing list"`
	LowStockThreshold   *int           `json:"low_stock_threshold,omitempty" jsonschema:"new low stock warning threshold"`
	AttritionPercentage *float64       `json:"attrition_percentage,omitempty" jsonschema:"new attrition percentage"`
	AttritionQuantity   *int           `json:"attrition_quantity,omitempty" jsonschema:"new fixed attrition quantity"`
	CustomFields        map[string]any `json:"custom_fields,omitempty" jsonschema:"custom field values to set"`
}

func ListPartsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_parts",
		Description: "List all parts in the PartsBox database with pagination and optional JMESPath filtering. " +
			"Field names contain '/' and must be double-quoted in queries, e.g. [?contains(\"part/tags\", 'resistor')]. " +
			"Use nvl to guard nullable fields: [?contains(nvl(\"part/name\", ''), 'resistor')]. " +
			"Pass the returned cache_key to page through the same snapshot without refetching.",
	}
}

// ListPartsHandler pages through the full part catalog.
func ListPartsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[ListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, Page, error) {
		page := pager.paginate(ctx, input, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, "part/all", nil)
		})
		return nil, page, nil
	}
}

func GetPartStorageTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_part_storage",
		Description: "List the storage locations holding stock of one part, with pagination and optional " +
			"JMESPath filtering over the stock entries.",
	}
}

func GetPartStorageHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[PartListInput, Page] {
	return partScopedListHandler(api, pager, "part/storage")
}

func GetPartLotsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_part_lots",
		Description: "List the lots containing stock of one part, with pagination and optional JMESPath " +
			"filtering over the lot entries.",
	}
}

func GetPartLotsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[PartListInput, Page] {
	return partScopedListHandler(api, pager, "part/lots")
}

func partScopedListHandler(api InventoryAPI, pager *Pager, operation string) mcp.ToolHandlerFor[PartListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartListInput) (*mcp.CallToolResult, Page, error) {
		if input.PartID == "" {
			return nil, failPage(resolvedLimit(input.ListInput), resolvedOffset(input.ListInput), "part_id is required"), nil
		}
		page := pager.paginate(ctx, input.ListInput, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, operation, map[string]any{"part/id": input.PartID})
		})
		return nil, page, nil
	}
}

func GetPartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_part",
		Description: "Get detailed information for a specific part, including its stock history entries.",
	}
}

func GetPartHandler(api InventoryAPI) mcp.ToolHandlerFor[GetPartInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetPartInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.PartID == "" {
			return nil, RecordResult{Error: "part_id is required"}, nil
		}
		result := fetchRecord(ctx, api, "part/get", map[string]any{"part/id": input.PartID},
			fmt.Sprintf("Part not found: %s", input.PartID))
		return nil, result, nil
	}
}

func CreatePartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_part",
		Description: "Create a new part. Only the name is required; all other fields are optional.",
	}
}

func CreatePartHandler(api InventoryAPI) mcp.ToolHandlerFor[CreatePartInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreatePartInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.Name == "" {
			return nil, RecordResult{Error: "name is required"}, nil
		}
		partType := input.PartType
		if partType == "" {
			partType = "local"
		}
		if !validPartTypes[partType] {
			return nil, RecordResult{Error: fmt.Sprintf("part_type must be one of: %s", strings.Join(partTypeNames(), ", "))}, nil
		}

		payload := map[string]any{
			"part/name": input.Name,
			"part/type": partType,
		}
		applyPartFields(payload, partFields{
			Description:         input.Description,
			Notes:               input.Notes,
			Footprint:           input.Footprint,
			Manufacturer:        input.Manufacturer,
			MPN:                 input.MPN,
			Tags:                input.Tags,
			CadKeys:             input.CadKeys,
			LowStockThreshold:   input.LowStockThreshold,
			AttritionPercentage: input.AttritionPercentage,
			AttritionQuantity:   input.AttritionQuantity,
			CustomFields:        input.CustomFields,
		})
		return nil, submitRecord(ctx, api, "part/create", payload), nil
	}
}

func UpdatePartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_part",
		Description: "Update an existing part. Omitted fields are left unchanged; tags and cad_keys replace the existing lists.",
	}
}

func UpdatePartHandler(api InventoryAPI) mcp.ToolHandlerFor[UpdatePartInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdatePartInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.PartID == "" {
			return nil, RecordResult{Error: "part_id is required"}, nil
		}
		payload := map[string]any{"part/id": input.PartID}
		if input.Name != nil {
			payload["part/name"] = *input.Name
		}
		applyPartFields(payload, partFields{
			Description:         input.Description,
			Notes:               input.Notes,
			Footprint:           input.Footprint,
			Manufacturer:        input.Manufacturer,
			MPN:                 input.MPN,
			Tags:                input.Tags,
			CadKeys:             input.CadKeys,
			LowStockThreshold:   input.LowStockThreshold,
			AttritionPercentage: input.AttritionPercentage,
			AttritionQuantity:   input.AttritionQuantity,
			CustomFields:        input.CustomFields,
		})
		return nil, submitRecord(ctx, api, "part/update", payload), nil
	}
}

func DeletePartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_part",
		Description: "Delete a part. The API acknowledges with status information; data may be null on success.",
	}
}

func DeletePartHandler(api InventoryAPI) mcp.ToolHandlerFor[GetPartInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetPartInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.PartID == "" {
			return nil, RecordResult{Error: "part_id is required"}, nil
		}
		return nil, submitRecord(ctx, api, "part/delete", map[string]any{"part/id": input.PartID}), nil
	}
}

// partFields are the optional part attributes shared by create and update.
type partFields struct {
	Description         *string
	Notes               *string
	Footprint           *string
	Manufacturer        *string
	MPN                 *string
	Tags                []string
	CadKeys             []string
	LowStockThreshold   *int
	AttritionPercentage *float64
	AttritionQuantity   *int
	CustomFields        map[string]any
}

func applyPartFields(payload map[string]any, fields partFields) {
	if fields.Description != nil {
		payload["part/description"] = *fields.Description
	}
	if fields.Notes != nil {
		payload["part/notes"] = *fields.Notes
	}
	if fields.Footprint != nil {
		payload["part/footprint"] = *fields.Footprint
	}
	if fields.Manufacturer != nil {
		payload["part/manufacturer"] = *fields.Manufacturer
	}
	if fields.MPN != nil {
		payload["part/mpn"] = *fields.MPN
	}
	if fields.Tags != nil {
		payload["part/tags"] = fields.Tags
	}
	if fields.CadKeys != nil {
		payload["part/cad-keys"] = fields.CadKeys
	}
	if fields.LowStockThreshold != nil {
		payload["part/low-stock"] = map[string]any{"report": *fields.LowStockThreshold}
	}
	if fields.AttritionPercentage != nil || fields.AttritionQuantity != nil {
		attrition := map[string]any{}
		if fields.AttritionPercentage != nil {
			attrition["percentage"] = *fields.AttritionPercentage
		}
		if fields.AttritionQuantity != nil {
			attrition["quantity"] = *fields.AttritionQuantity
		}
		payload["part/attrition"] = attrition
	}
	if fields.CustomFields != nil {
		payload["part/custom"] = fields.CustomFields
	}
}

func partTypeNames() []string {
	return []string{"local", "linked", "sub-assembly", "meta"}
}
