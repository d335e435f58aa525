package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kayz/slidesmith/internal/compose"
	"github.com/kayz/slidesmith/internal/engine"
)

// NewServer builds an MCP server exposing the slide engine as tools, so
// agent runtimes can drive slide generation directly.
func NewServer(eng *engine.Engine, generate engine.GenerateFunc, version string) *server.MCPServer {
	s := server.NewMCPServer("slidesmith", version)

	s.AddTool(mcp.NewTool("list_variants",
		mcp.WithDescription("List the slide layout variants available for generation"),
	), listVariantsHandler(eng))

	s.AddTool(mcp.NewTool("generate_slide",
		mcp.WithDescription("Generate the HTML content for one slide from a layout variant"),
		mcp.WithString("variant_id", mcp.Required(), mcp.Description("Layout variant identifier")),
		mcp.WithString("title", mcp.Description("Slide title")),
		mcp.WithString("topic", mcp.Description("What the slide must convey")),
		mcp.WithString("audience", mcp.Description("Who the presentation is for")),
		mcp.WithString("tone", mcp.Description("Writing register, e.g. formal")),
	), generateSlideHandler(eng, generate))

	return s
}

func listVariantsHandler(eng *engine.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := eng.Specs().List()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list variants: %v", err)), nil
		}
		return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
	}
}

func generateSlideHandler(eng *engine.Engine, generate engine.GenerateFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variantID, _ := req.Params.Arguments["variant_id"].(string)
		variantID = strings.TrimSpace(variantID)
		if variantID == "" {
			return mcp.NewToolResultError("variant_id is required"), nil
		}

		slide := compose.SlideContext{}
		if v, ok := req.Params.Arguments["title"].(string); ok {
			slide.Title = v
		}
		if v, ok := req.Params.Arguments["topic"].(string); ok {
			slide.Topic = v
		}

		var presCtx *compose.PresentationContext
		audience, _ := req.Params.Arguments["audience"].(string)
		tone, _ := req.Params.Arguments["tone"].(string)
		if audience != "" || tone != "" {
			presCtx = &compose.PresentationContext{Audience: audience, Tone: tone}
		}

		result, err := eng.Generate(ctx, variantID, slide, presCtx, generate)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generate slide: %v", err)), nil
		}

		payload, err := json.Marshal(map[string]any{
			"assembled":  result.Assembled,
			"validation": result.Validation,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
