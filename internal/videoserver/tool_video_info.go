package videoserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/extract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VideoInfoInput struct {
	URL string `json:"url" jsonschema:"Video URL (YouTube watch/shorts/embed, youtu.be, TikTok, Douyin)"`
}

type VideoInfoOutput struct {
	Video *engine.VideoInfo `json:"video,omitempty"`
	Error *engine.ErrorInfo `json:"error,omitempty"`
}

func registerGetVideoInfo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_video_info",
		Description: "Extract video metadata for a YouTube, TikTok, or Douyin URL: title, uploader, duration, view counts, plus best-quality, smallest, and audio-only format variants with direct URLs. Results are cached for a short TTL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoInfoInput) (*mcp.CallToolResult, VideoInfoOutput, error) {
		if input.URL == "" {
			return nil, VideoInfoOutput{}, fmt.Errorf("url is required")
		}

		info, err := extract.VideoInfo(ctx, input.URL)
		if err != nil {
			slog.Warn("get_video_info failed", slog.String("url", input.URL), slog.Any("error", err))
			return nil, VideoInfoOutput{Error: engine.Describe(err)}, nil
		}
		return nil, VideoInfoOutput{Video: info}, nil
	})
}
