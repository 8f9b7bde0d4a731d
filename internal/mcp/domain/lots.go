package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetLotInput identifies a single lot.
type GetLotInput struct {
	LotID string `json:"lot_id" jsonschema:"the lot identifier"`
}

func ListLotsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_lots",
		Description: "List all lots with pagination and optional JMESPath filtering. " +
			"Field names contain '/' and must be double-quoted in queries, e.g. [?\"lot/part-id\" == 'abc123'].",
	}
}

func ListLotsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[ListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, Page, error) {
		page := pager.paginate(ctx, input, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, "lot/all", nil)
		})
		return nil, page, nil
	}
}

func GetLotTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_lot",
		Description: "Get detailed information for a specific lot.",
	}
}

func GetLotHandler(api InventoryAPI) mcp.ToolHandlerFor[GetLotInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetLotInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.LotID == "" {
			return nil, RecordResult{Error: "lot_id is required"}, nil
		}
		result := fetchRecord(ctx, api, "lot/get", map[string]any{"lot/id": input.LotID},
			fmt.Sprintf("Lot not found: %s", input.LotID))
		return nil, result, nil
	}
}
