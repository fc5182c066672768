package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/socialpulse/postfilter/internal/models"
	"github.com/socialpulse/postfilter/internal/pipeline"
	"github.com/socialpulse/postfilter/internal/rules"
)

// FilterInput is the MCP tool input schema (matches HTTP API field names).
type FilterInput struct {
	Posts []models.Post `json:"posts" jsonschema:"posts to run through the quality filter"`
}

// FilterOutput carries both partitions; filtered posts come back annotated.
type FilterOutput struct {
	Passed   []models.Post `json:"passed"`
	Filtered []models.Post `json:"filtered"`
}

// CheckInput is the MCP tool input schema for a rules-only check.
type CheckInput struct {
	Post models.Post `json:"post" jsonschema:"single post to check against the deterministic rules"`
}

// NewFilterHandler returns a tool handler that runs the full two-stage
// pipeline. Pass the returned function to mcp.AddTool.
func NewFilterHandler(filter *pipeline.Pipeline) func(context.Context, *mcp.CallToolRequest, FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
		return FilterPosts(ctx, filter, req, input)
	}
}

// FilterPosts partitions the posts and returns both halves.
func FilterPosts(
	ctx context.Context,
	filter *pipeline.Pipeline,
	req *mcp.CallToolRequest,
	input FilterInput,
) (*mcp.CallToolResult, FilterOutput, error) {
	passed, filtered := filter.FilterBatch(ctx, input.Posts)
	return nil, FilterOutput{Passed: passed, Filtered: filtered}, nil
}

// NewCheckHandler returns a tool handler that runs only the deterministic
// rule stage over a single post. Faster than the full pipeline and spends no
// scoring calls.
func NewCheckHandler(engine *rules.Engine) func(context.Context, *mcp.CallToolRequest, CheckInput) (*mcp.CallToolResult, models.FilterResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, models.FilterResult, error) {
		return CheckPost(ctx, engine, req, input)
	}
}

// CheckPost runs the rule stage and returns the verdict.
func CheckPost(
	ctx context.Context,
	engine *rules.Engine,
	req *mcp.CallToolRequest,
	input CheckInput,
) (*mcp.CallToolResult, models.FilterResult, error) {
	result := engine.Check(input.Post)
	return nil, result, nil
}
