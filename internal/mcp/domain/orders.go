package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// OrderListInput scopes a list tool to one order.
type OrderListInput struct {
	OrderID string `json:"order_id" jsonschema:"the order identifier"`
	ListInput
}

// GetOrderInput identifies a single order.
type GetOrderInput struct {
	OrderID string `json:"order_id" jsonschema:"the order identifier"`
}

func ListOrdersTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_orders",
		Description: "List all orders with pagination and optional JMESPath filtering. " +
			"Field names contain '/' and must be double-quoted in queries, e.g. [?\"order/vendor\" == 'Mouser'].",
	}
}

func ListOrdersHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[ListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, Page, error) {
		page := pager.paginate(ctx, input, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, "order/all", nil)
		})
		return nil, page, nil
	}
}

func GetOrderEntriesTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_order_entries",
		Description: "List the line entries of one order, with pagination and optional JMESPath " +
			"filtering over the entries.",
	}
}

func GetOrderEntriesHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[OrderListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OrderListInput) (*mcp.CallToolResult, Page, error) {
		if input.OrderID == "" {
			return nil, failPage(resolvedLimit(input.ListInput), resolvedOffset(input.ListInput), "order_id is required"), nil
		}
		page := pager.paginate(ctx, input.ListInput, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, "order/get-entries", map[string]any{"order/id": input.OrderID})
		})
		return nil, page, nil
	}
}

func GetOrderTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_order",
		Description: "Get detailed information for a specific order.",
	}
}

func GetOrderHandler(api InventoryAPI) mcp.ToolHandlerFor[GetOrderInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetOrderInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.OrderID == "" {
			return nil, RecordResult{Error: "order_id is required"}, nil
		}
		result := fetchRecord(ctx, api, "order/get", map[string]any{"order/id": input.OrderID},
			fmt.Sprintf("Order not found: %s", input.OrderID))
		return nil, result, nil
	}
}
