package domain

import (
	"context"

	"github.com/louisbranch/partsbox-mcp/internal/pagecache"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CacheKeyInput identifies a cached result set.
type CacheKeyInput struct {
	CacheKey string `json:"cache_key" jsonschema:"the cache key returned by a list tool"`
}

// CacheInvalidateResult reports whether an entry was removed.
type CacheInvalidateResult struct {
	Success     bool `json:"success" jsonschema:"whether the call succeeded"`
	Invalidated bool `json:"invalidated" jsonschema:"whether a live entry was removed"`
}

func GetCacheInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_cache_info",
		Description: "Inspect a pagination cache entry without touching it: validity, item count, age " +
			"and remaining lifetime. An unknown or expired key reports valid=false.",
	}
}

func GetCacheInfoHandler(cache *pagecache.Cache) mcp.ToolHandlerFor[CacheKeyInput, pagecache.Info] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CacheKeyInput) (*mcp.CallToolResult, pagecache.Info, error) {
		return nil, cache.GetInfo(input.CacheKey), nil
	}
}

func InvalidateCacheTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "invalidate_cache",
		Description: "Discard a pagination cache entry so the next list call refetches from the API. " +
			"Invalidating an unknown or already expired key is not an error.",
	}
}

func InvalidateCacheHandler(cache *pagecache.Cache) mcp.ToolHandlerFor[CacheKeyInput, CacheInvalidateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CacheKeyInput) (*mcp.CallToolResult, CacheInvalidateResult, error) {
		return nil, CacheInvalidateResult{Success: true, Invalidated: cache.Invalidate(input.CacheKey)}, nil
	}
}
