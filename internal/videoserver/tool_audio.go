package videoserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/extract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type AudioURLInput struct {
	URL     string `json:"url" jsonschema:"Video URL"`
	Quality string `json:"quality,omitempty" jsonschema:"Audio quality selector: best (highest bitrate, default) or smallest (lowest filesize)"`
}

type AudioURLOutput struct {
	Audio *engine.AudioStreamInfo `json:"audio,omitempty"`
	Error *engine.ErrorInfo       `json:"error,omitempty"`
}

func registerGetAudioURL(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_audio_url",
		Description: "Extract a direct audio-only stream URL for a video, for transcription or audio analysis without downloading the video track.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AudioURLInput) (*mcp.CallToolResult, AudioURLOutput, error) {
		if input.URL == "" {
			return nil, AudioURLOutput{}, fmt.Errorf("url is required")
		}

		audio, err := extract.AudioURL(ctx, input.URL, input.Quality)
		if err != nil {
			slog.Warn("get_audio_url failed", slog.String("url", input.URL), slog.Any("error", err))
			return nil, AudioURLOutput{Error: engine.Describe(err)}, nil
		}
		return nil, AudioURLOutput{Audio: audio}, nil
	})
}
