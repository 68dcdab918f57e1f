package videoserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/extract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type TranscriptInput struct {
	URL      string `json:"url" jsonschema:"Video URL"`
	Language string `json:"language,omitempty" jsonschema:"Subtitle language code (default: en)"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: text (joined transcript, default) or segments (timed cues)"`
}

type TranscriptOutput struct {
	Transcript *engine.TranscriptResult `json:"transcript,omitempty"`
	Error      *engine.ErrorInfo        `json:"error,omitempty"`
}

func registerGetTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Extract the subtitle transcript of a video. Prefers manually uploaded subtitles, falls back to auto-generated captions. Returns the full text, optionally with per-segment timing.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		if input.URL == "" {
			return nil, TranscriptOutput{}, fmt.Errorf("url is required")
		}

		result, err := extract.Transcript(ctx, input.URL, input.Language, input.Format)
		if err != nil {
			slog.Warn("get_transcript failed", slog.String("url", input.URL), slog.Any("error", err))
			return nil, TranscriptOutput{Error: engine.Describe(err)}, nil
		}
		return nil, TranscriptOutput{Transcript: result}, nil
	})
}
