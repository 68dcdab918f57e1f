package videoserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/extract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type BatchGetInfoInput struct {
	URLs []string `json:"urls" jsonschema:"Video URLs to extract (max 10)"`
}

type BatchGetInfoOutput struct {
	Batch *engine.BatchResult `json:"batch,omitempty"`
	Error *engine.ErrorInfo   `json:"error,omitempty"`
}

func registerBatchGetInfo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_get_info",
		Description: "Extract video metadata for up to 10 URLs in parallel. Each URL gets its own success/error outcome in input order; one bad URL never fails the batch.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BatchGetInfoInput) (*mcp.CallToolResult, BatchGetInfoOutput, error) {
		if len(input.URLs) == 0 {
			return nil, BatchGetInfoOutput{}, fmt.Errorf("urls is required")
		}

		batch, err := extract.BatchGetInfo(ctx, input.URLs)
		if err != nil {
			slog.Warn("batch_get_info failed", slog.Int("urls", len(input.URLs)), slog.Any("error", err))
			return nil, BatchGetInfoOutput{Error: engine.Describe(err)}, nil
		}
		return nil, BatchGetInfoOutput{Batch: batch}, nil
	})
}
