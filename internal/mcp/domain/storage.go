package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StorageListInput scopes a list tool to one storage location.
type StorageListInput struct {
	StorageID string `json:"storage_id" jsonschema:"the storage location identifier"`
	ListInput
}

// GetStorageLocationInput identifies a single storage location.
type GetStorageLocationInput struct {
	StorageID string `json:"storage_id" jsonschema:"the storage location identifier"`
}

func ListStorageLocationsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_storage_locations",
		Description: "List all storage locations with pagination and optional JMESPath filtering. " +
			"Field names contain '/' and must be double-quoted in queries, e.g. [?contains(nvl(\"storage/name\", ''), 'shelf')].",
	}
}

func ListStorageLocationsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[ListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, Page, error) {
		page := pager.paginate(ctx, input, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, "storage/all", nil)
		})
		return nil, page, nil
	}
}

func ListStoragePartsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_storage_parts",
		Description: "List the parts stocked in one storage location, with pagination and optional " +
			"JMESPath filtering over the stock entries.",
	}
}

func ListStoragePartsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[StorageListInput, Page] {
	return storageScopedListHandler(api, pager, "storage/parts")
}

func ListStorageLotsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_storage_lots",
		Description: "List the lots stored in one storage location, with pagination and optional " +
			"JMESPath filtering over the lot entries.",
	}
}

func ListStorageLotsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[StorageListInput, Page] {
	return storageScopedListHandler(api, pager, "storage/lots")
}

func storageScopedListHandler(api InventoryAPI, pager *Pager, operation string) mcp.ToolHandlerFor[StorageListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StorageListInput) (*mcp.CallToolResult, Page, error) {
		if input.StorageID == "" {
			return nil, failPage(resolvedLimit(input.ListInput), resolvedOffset(input.ListInput), "storage_id is required"), nil
		}
		page := pager.paginate(ctx, input.ListInput, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, operation, map[string]any{"storage/id": input.StorageID})
		})
		return nil, page, nil
	}
}

func GetStorageLocationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_storage_location",
		Description: "Get detailed information for a specific storage location.",
	}
}

func GetStorageLocationHandler(api InventoryAPI) mcp.ToolHandlerFor[GetStorageLocationInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetStorageLocationInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.StorageID == "" {
			return nil, RecordResult{Error: "storage_id is required"}, nil
		}
		result := fetchRecord(ctx, api, "storage/get", map[string]any{"storage/id": input.StorageID},
			fmt.Sprintf("Storage location not found: %s", input.StorageID))
		return nil, result, nil
	}
}
