package videoserver

import (
	"context"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/extract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type HealthCheckInput struct{}

func registerHealthCheck(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "health_check",
		Description: "Check extractor environment health: yt-dlp availability and version, ffmpeg availability, configured SSH remote host, and cache hit/miss counters.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ HealthCheckInput) (*mcp.CallToolResult, *engine.HealthStatus, error) {
		return nil, extract.Health(ctx), nil
	})
}
