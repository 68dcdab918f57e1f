package videoserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/extract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PlaylistInfoInput struct {
	URL       string `json:"url" jsonschema:"Playlist URL"`
	MaxVideos int    `json:"max_videos,omitempty" jsonschema:"Maximum videos to list (1-50, default 20)"`
}

type PlaylistInfoOutput struct {
	Playlist *engine.PlaylistInfo `json:"playlist,omitempty"`
	Error    *engine.ErrorInfo    `json:"error,omitempty"`
}

func registerGetPlaylistInfo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_playlist_info",
		Description: "Extract playlist metadata and a truncated member video list: title, channel, total video count, and per-video ID/title/URL/duration.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input PlaylistInfoInput) (*mcp.CallToolResult, PlaylistInfoOutput, error) {
		if input.URL == "" {
			return nil, PlaylistInfoOutput{}, fmt.Errorf("url is required")
		}

		playlist, err := extract.Playlist(ctx, input.URL, input.MaxVideos)
		if err != nil {
			slog.Warn("get_playlist_info failed", slog.String("url", input.URL), slog.Any("error", err))
			return nil, PlaylistInfoOutput{Error: engine.Describe(err)}, nil
		}
		return nil, PlaylistInfoOutput{Playlist: playlist}, nil
	})
}
