package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/partsbox-mcp/internal/pagecache"
	"github.com/louisbranch/partsbox-mcp/internal/query"
)

const (
	// defaultLimit applies when a list tool is called without a limit.
	defaultLimit = 50
	// maxLimit caps one page; callers wanting more iterate with offsets.
	maxLimit = 1000
)

// InventoryAPI is the subset of the PartsBox client used by tool handlers.
type InventoryAPI interface {
	Call(ctx context.Context, operation string, payload map[string]any) (any, error)
	ListAll(ctx context.Context, operation string, payload map[string]any) ([]any, error)
}

// Pager bundles the pagination cache and query engine shared by every list
// tool. Instances are injected so tests run against isolated caches.
type Pager struct {
	cache  *pagecache.Cache
	engine *query.Engine
}

// NewPager creates a pager over the given cache and query engine.
func NewPager(cache *pagecache.Cache, engine *query.Engine) *Pager {
	return &Pager{cache: cache, engine: engine}
}

// Cache exposes the underlying pagination cache for the cache info tools.
func (p *Pager) Cache() *pagecache.Cache {
	return p.cache
}

// ListInput is the shared input shape for list tools.
type ListInput struct {
	Limit    *int   `json:"limit,omitempty" jsonschema:"maximum items to return (1-1000, default 50)"`
	Offset   *int   `json:"offset,omitempty" jsonschema:"starting index in the query results (default 0)"`
	CacheKey string `json:"cache_key,omitempty" jsonschema:"reuse cached data from a previous call; omit for a fresh fetch"`
	Query    string `json:"query,omitempty" jsonschema:"JMESPath filter/projection applied before pagination; field names contain slashes and must be double-quoted, e.g. [?contains(nvl(\"part/name\", ''), 'resistor')]; extension functions: nvl, int, str, regex_replace"`
}

// Page is the uniform result shape for list tools.
type Page struct {
	Success      bool   `json:"success" jsonschema:"whether the call succeeded"`
	CacheKey     string `json:"cache_key" jsonschema:"key identifying the cached full result set; pass it back to page through the same snapshot"`
	Total        int    `json:"total" jsonschema:"total items after the query, before pagination"`
	Offset       int    `json:"offset" jsonschema:"starting index of this page"`
	Limit        int    `json:"limit" jsonschema:"requested page size"`
	HasMore      bool   `json:"has_more" jsonschema:"whether items remain past this page"`
	Data         []any  `json:"data" jsonschema:"the records for this page; null on failure"`
	Error        string `json:"error,omitempty" jsonschema:"failure message"`
	QueryApplied string `json:"query_applied,omitempty" jsonschema:"the query that produced the cached result set"`
}

// failPage builds the uniform failure shape: success=false, data null.
func failPage(limit, offset int, message string) Page {
	return Page{Success: false, Limit: limit, Offset: offset, Error: message}
}

// paginate runs the shared list pipeline over a fetch of the full record
// set. The query is applied once, before caching, so every page served
// under one cache key comes from the same filtered snapshot; reusing a key
// with a different query returns the cached result and ignores the new
// query.
func (p *Pager) paginate(ctx context.Context, input ListInput, fetch func(context.Context) ([]any, error)) Page {
	limit := resolvedLimit(input)
	offset := resolvedOffset(input)

	if limit < 1 || limit > maxLimit {
		return failPage(limit, offset, "limit must be between 1 and 1000")
	}
	if offset < 0 {
		return failPage(limit, offset, "offset must be non-negative")
	}

	var queryErr error
	resolved, err := p.cache.GetOrCreate(input.CacheKey, input.Query, func() ([]any, error) {
		records, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if input.Query == "" {
			return records, nil
		}
		result, err := p.engine.Search(input.Query, records)
		if err != nil {
			queryErr = err
			return nil, err
		}
		return normalizeItems(result), nil
	})
	if err != nil {
		if queryErr != nil {
			page := failPage(limit, offset, fmt.Sprintf("Invalid query expression: %v", queryErr))
			page.QueryApplied = input.Query
			return page
		}
		return failPage(limit, offset, fmt.Sprintf("API request failed: %v", err))
	}

	total := len(resolved.Items)
	data := slicePage(resolved.Items, offset, limit)
	return Page{
		Success:      true,
		CacheKey:     resolved.Key,
		Total:        total,
		Offset:       offset,
		Limit:        limit,
		HasMore:      offset+len(data) < total,
		Data:         data,
		QueryApplied: resolved.Query,
	}
}

// normalizeItems flattens a query result into a record sequence. A nil
// result (filter matched nothing) becomes empty; an aggregation result such
// as length(@) becomes a single-item sequence so pagination still applies.
func normalizeItems(result any) []any {
	switch v := result.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	default:
		return []any{v}
	}
}

func resolvedLimit(input ListInput) int {
	if input.Limit != nil {
		return *input.Limit
	}
	return defaultLimit
}

func resolvedOffset(input ListInput) int {
	if input.Offset != nil {
		return *input.Offset
	}
	return 0
}

func slicePage(items []any, offset, limit int) []any {
	if offset >= len(items) {
		return []any{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
