package videoserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/extract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type SearchVideosInput struct {
	Query      string `json:"query" jsonschema:"Search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Number of results to return (1-20, default 5)"`
}

type SearchVideosOutput struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []engine.SearchResult `json:"results,omitempty"`
	Error   *engine.ErrorInfo     `json:"error,omitempty"`
}

func registerSearchVideos(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_videos",
		Description: "Search YouTube videos by keyword. Returns video ID, title, URL, duration, channel, and view count per hit. No LLM processing, returns extractor data directly.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchVideosInput) (*mcp.CallToolResult, SearchVideosOutput, error) {
		if input.Query == "" {
			return nil, SearchVideosOutput{}, fmt.Errorf("query is required")
		}

		results, err := extract.Search(ctx, input.Query, input.MaxResults)
		if err != nil {
			slog.Warn("search_videos failed", slog.String("query", input.Query), slog.Any("error", err))
			return nil, SearchVideosOutput{Query: input.Query, Error: engine.Describe(err)}, nil
		}
		return nil, SearchVideosOutput{Query: input.Query, Count: len(results), Results: results}, nil
	})
}
