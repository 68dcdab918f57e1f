package extract

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// Health checks extractor environment availability. Never returns an error;
// missing tools are reported as status fields.
func Health(ctx context.Context) *engine.HealthStatus {
	c := engine.Current()
	st := &engine.HealthStatus{SSHHost: c.SSHHost}

	if path, err := exec.LookPath(c.YtdlpPath); err == nil {
		st.YtdlpAvailable = true
		vctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if out, err := exec.CommandContext(vctx, path, "--version").Output(); err == nil {
			st.YtdlpVersion = strings.TrimSpace(string(out))
		}
	}

	if path, err := exec.LookPath("ffmpeg"); err == nil {
		st.FFmpegAvailable = true
		st.FFmpegPath = path
		st.FFmpegMessage = "ffmpeg is available"
	} else {
		st.FFmpegMessage = "ffmpeg not found. Some formats may be unavailable. " +
			"Install: apt install ffmpeg | brew install ffmpeg"
	}

	st.CacheHits, st.CacheMisses = engine.CacheStats()
	return st
}
