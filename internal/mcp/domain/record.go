package domain

import (
	"context"
	"fmt"
)

// RecordResult is the result shape for single-record and write tools.
type RecordResult struct {
	Success bool   `json:"success" jsonschema:"whether the call succeeded"`
	Data    any    `json:"data" jsonschema:"the record payload; null on failure"`
	Error   string `json:"error,omitempty" jsonschema:"failure message"`
}

// fetchRecord retrieves one record. A null payload from the API means the
// identifier did not resolve, reported as notFound.
func fetchRecord(ctx context.Context, api InventoryAPI, operation string, payload map[string]any, notFound string) RecordResult {
	data, err := api.Call(ctx, operation, payload)
	if err != nil {
		return RecordResult{Error: fmt.Sprintf("API request failed: %v", err)}
	}
	if data == nil {
		return RecordResult{Error: notFound}
	}
	return RecordResult{Success: true, Data: data}
}

// submitRecord posts a write operation. Unlike fetchRecord a null payload is
// fine; some operations acknowledge with no body.
func submitRecord(ctx context.Context, api InventoryAPI, operation string, payload map[string]any) RecordResult {
	data, err := api.Call(ctx, operation, payload)
	if err != nil {
		return RecordResult{Error: fmt.Sprintf("API request failed: %v", err)}
	}
	return RecordResult{Success: true, Data: data}
}
