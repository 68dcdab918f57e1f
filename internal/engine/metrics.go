package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ExtractRequests    atomic.Int64
	ExtractErrors      atomic.Int64
	SSHRequests        atomic.Int64
	SSHErrors          atomic.Int64
	SearchRequests     atomic.Int64
	TranscriptRequests atomic.Int64
	AudioRequests      atomic.Int64
	PlaylistRequests   atomic.Int64
	BatchRequests      atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"extract_requests":    metrics.ExtractRequests.Load(),
		"extract_errors":      metrics.ExtractErrors.Load(),
		"ssh_requests":        metrics.SSHRequests.Load(),
		"ssh_errors":          metrics.SSHErrors.Load(),
		"search_requests":     metrics.SearchRequests.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"audio_requests":      metrics.AudioRequests.Load(),
		"playlist_requests":   metrics.PlaylistRequests.Load(),
		"batch_requests":      metrics.BatchRequests.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"extract_requests", "extract_errors",
		"ssh_requests", "ssh_errors",
		"search_requests", "transcript_requests", "audio_requests",
		"playlist_requests", "batch_requests",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the extract sub-package.
func IncrExtractRequests()    { metrics.ExtractRequests.Add(1) }
func IncrExtractErrors()      { metrics.ExtractErrors.Add(1) }
func IncrSSHRequests()        { metrics.SSHRequests.Add(1) }
func IncrSSHErrors()          { metrics.SSHErrors.Add(1) }
func IncrSearchRequests()     { metrics.SearchRequests.Add(1) }
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrAudioRequests()      { metrics.AudioRequests.Add(1) }
func IncrPlaylistRequests()   { metrics.PlaylistRequests.Add(1) }
func IncrBatchRequests()      { metrics.BatchRequests.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
// Extractions routinely take several seconds, so the threshold is generous.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 30*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
