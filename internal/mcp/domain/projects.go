package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectListInput scopes a list tool to one project.
type ProjectListInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project identifier"`
	ListInput
}

// GetProjectInput identifies a single project.
type GetProjectInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project identifier"`
}

func ListProjectsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "list_projects",
		Description: "List all projects with pagination and optional JMESPath filtering. " +
			"Field names contain '/' and must be double-quoted in queries, e.g. [?contains(nvl(\"project/name\", ''), 'amplifier')].",
	}
}

func ListProjectsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[ListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, Page, error) {
		page := pager.paginate(ctx, input, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, "project/all", nil)
		})
		return nil, page, nil
	}
}

func GetProjectEntriesTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_project_entries",
		Description: "List the BOM entries of one project, with pagination and optional JMESPath " +
			"filtering over the entries.",
	}
}

func GetProjectEntriesHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[ProjectListInput, Page] {
	return projectScopedListHandler(api, pager, "project/get-entries")
}

func GetProjectBuildsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_project_builds",
		Description: "List the recorded builds of one project, with pagination and optional JMESPath " +
			"filtering over the build entries.",
	}
}

func GetProjectBuildsHandler(api InventoryAPI, pager *Pager) mcp.ToolHandlerFor[ProjectListInput, Page] {
	return projectScopedListHandler(api, pager, "project/get-builds")
}

func projectScopedListHandler(api InventoryAPI, pager *Pager, operation string) mcp.ToolHandlerFor[ProjectListInput, Page] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectListInput) (*mcp.CallToolResult, Page, error) {
		if input.ProjectID == "" {
			return nil, failPage(resolvedLimit(input.ListInput), resolvedOffset(input.ListInput), "project_id is required"), nil
		}
		page := pager.paginate(ctx, input.ListInput, func(ctx context.Context) ([]any, error) {
			return api.ListAll(ctx, operation, map[string]any{"project/id": input.ProjectID})
		})
		return nil, page, nil
	}
}

func GetProjectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_project",
		Description: "Get detailed information for a specific project.",
	}
}

func GetProjectHandler(api InventoryAPI) mcp.ToolHandlerFor[GetProjectInput, RecordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetProjectInput) (*mcp.CallToolResult, RecordResult, error) {
		if input.ProjectID == "" {
			return nil, RecordResult{Error: "project_id is required"}, nil
		}
		result := fetchRecord(ctx, api, "project/get", map[string]any{"project/id": input.ProjectID},
			fmt.Sprintf("Project not found: %s", input.ProjectID))
		return nil, result, nil
	}
}
