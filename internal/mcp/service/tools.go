package service

import (
	"github.com/louisbranch/partsbox-mcp/internal/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools binds every tool family onto the MCP server. All list tools
// share one pager so cache keys work across tools of the same snapshot.
func registerTools(server *mcp.Server, api domain.InventoryAPI, pager *domain.Pager) {
	registerPartTools(server, api, pager)
	registerStorageTools(server, api, pager)
	registerLotTools(server, api, pager)
	registerOrderTools(server, api, pager)
	registerProjectTools(server, api, pager)
	registerCacheTools(server, pager)
}

func registerPartTools(server *mcp.Server, api domain.InventoryAPI, pager *domain.Pager) {
	mcp.AddTool(server, domain.ListPartsTool(), domain.ListPartsHandler(api, pager))
	mcp.AddTool(server, domain.GetPartStorageTool(), domain.GetPartStorageHandler(api, pager))
	mcp.AddTool(server, domain.GetPartLotsTool(), domain.GetPartLotsHandler(api, pager))
	mcp.AddTool(server, domain.GetPartTool(), domain.GetPartHandler(api))
	mcp.AddTool(server, domain.CreatePartTool(), domain.CreatePartHandler(api))
	mcp.AddTool(server, domain.UpdatePartTool(), domain.UpdatePartHandler(api))
	mcp.AddTool(server, domain.DeletePartTool(), domain.DeletePartHandler(api))
}

func registerStorageTools(server *mcp.Server, api domain.InventoryAPI, pager *domain.Pager) {
	mcp.AddTool(server, domain.ListStorageLocationsTool(), domain.ListStorageLocationsHandler(api, pager))
	mcp.AddTool(server, domain.ListStoragePartsTool(), domain.ListStoragePartsHandler(api, pager))
	mcp.AddTool(server, domain.ListStorageLotsTool(), domain.ListStorageLotsHandler(api, pager))
	mcp.AddTool(server, domain.GetStorageLocationTool(), domain.GetStorageLocationHandler(api))
}

func registerLotTools(server *mcp.Server, api domain.InventoryAPI, pager *domain.Pager) {
	mcp.AddTool(server, domain.ListLotsTool(), domain.ListLotsHandler(api, pager))
	mcp.AddTool(server, domain.GetLotTool(), domain.GetLotHandler(api))
}

func registerOrderTools(server *mcp.Server, api domain.InventoryAPI, pager *domain.Pager) {
	mcp.AddTool(server, domain.ListOrdersTool(), domain.ListOrdersHandler(api, pager))
	mcp.AddTool(server, domain.GetOrderEntriesTool(), domain.GetOrderEntriesHandler(api, pager))
	mcp.AddTool(server, domain.GetOrderTool(), domain.GetOrderHandler(api))
}

func registerProjectTools(server *mcp.Server, api domain.InventoryAPI, pager *domain.Pager) {
	mcp.AddTool(server, domain.ListProjectsTool(), domain.ListProjectsHandler(api, pager))
	mcp.AddTool(server, domain.GetProjectEntriesTool(), domain.GetProjectEntriesHandler(api, pager))
	mcp.AddTool(server, domain.GetProjectBuildsTool(), domain.GetProjectBuildsHandler(api, pager))
	mcp.AddTool(server, domain.GetProjectTool(), domain.GetProjectHandler(api))
}

func registerCacheTools(server *mcp.Server, pager *domain.Pager) {
	cache := pager.Cache()
	mcp.AddTool(server, domain.GetCacheInfoTool(), domain.GetCacheInfoHandler(cache))
	mcp.AddTool(server, domain.InvalidateCacheTool(), domain.InvalidateCacheHandler(cache))
}
