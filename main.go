// go_video — video metadata extraction MCP server.
//
// Fronts yt-dlp to extract video metadata, transcripts, and direct media
// URLs for YouTube, TikTok, and Douyin, exposed as MCP tools. Extraction
// runs as a local subprocess, or on a remote SSH host when a platform needs
// browser cookies that only exist there. Runs as HTTP MCP server or stdio
// transport.
package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/videoserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting go_video",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_video",
		Version: version,
	}, nil)

	videoserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 7))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_video",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		Proxy:            env.Str("VIDEO_PROXY", ""),
		CookieSource:     env.Str("VIDEO_COOKIE_SOURCE", ""),
		CookieFile:       env.Str("VIDEO_COOKIE_FILE", ""),
		SSHHost:          env.Str("VIDEO_SSH_HOST", ""),
		Platforms:        platformOverrides(),
		YtdlpPath:        env.Str("VIDEO_YTDLP_PATH", "yt-dlp"),
		MaxSessions:      int64(env.Int("VIDEO_MAX_SESSIONS", 8)),
		ExtractTimeout:   env.Duration("VIDEO_EXTRACT_TIMEOUT", 60*time.Second),
		SubsTimeout:      env.Duration("VIDEO_SUBS_TIMEOUT", 120*time.Second),
		BatchConcurrency: env.Int("VIDEO_BATCH_CONCURRENCY", 3),
	}
	engine.Init(c)

	for p, po := range c.Platforms {
		if po.SSHHost != "" || c.SSHHost != "" {
			slog.Info("remote extraction configured",
				slog.String("platform", string(p)),
				slog.String("host", firstNonEmpty(po.SSHHost, c.SSHHost)),
			)
		}
	}

	cacheTTL := env.Duration("VIDEO_CACHE_TTL", engine.DefaultCacheTTL)
	engine.InitCache(
		env.Str("REDIS_URL", ""),
		cacheTTL,
		env.Int("CACHE_MAX_ENTRIES", 1000),
		env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	)
}

// platformOverrides reads per-platform env overrides, e.g.
// VIDEO_TIKTOK_PROXY or VIDEO_YOUTUBE_COOKIE_SOURCE.
func platformOverrides() map[engine.Platform]engine.PlatformOverrides {
	out := make(map[engine.Platform]engine.PlatformOverrides, len(engine.Platforms))
	for _, p := range engine.Platforms {
		prefix := "VIDEO_" + strings.ToUpper(string(p)) + "_"
		po := engine.PlatformOverrides{
			Proxy:        env.Str(prefix+"PROXY", ""),
			CookieSource: env.Str(prefix+"COOKIE_SOURCE", ""),
			CookieFile:   env.Str(prefix+"COOKIE_FILE", ""),
			SSHHost:      env.Str(prefix+"SSH_HOST", ""),
		}
		if po != (engine.PlatformOverrides{}) {
			out[p] = po
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
