package extract

import (
	"context"
	"strconv"

	"github.com/anatolykoptev/go_video/internal/engine"
	"golang.org/x/sync/errgroup"
)

const (
	maxBatchURLs     = 10
	maxPlaylistItems = 50
	defaultPlaylist  = 20
)

// BatchGetInfo extracts video info for multiple URLs in parallel, bounded by
// the configured item concurrency. A failed item becomes that item's outcome
// and never aborts its siblings; results keep the input order. The URL count
// is validated before any extraction starts.
func BatchGetInfo(ctx context.Context, urls []string) (*engine.BatchResult, error) {
	engine.IncrBatchRequests()

	if len(urls) == 0 {
		return nil, engine.Errorf(engine.KindBatch, "urls must be a non-empty list")
	}
	if len(urls) > maxBatchURLs {
		return nil, engine.Errorf(engine.KindBatch, "maximum %d URLs per batch", maxBatchURLs)
	}

	results := make([]engine.BatchItem, len(urls))

	var g errgroup.Group
	g.SetLimit(engine.Current().BatchConcurrency)
	for i, url := range urls {
		g.Go(func() error {
			info, err := VideoInfo(ctx, url)
			if err != nil {
				results[i] = engine.BatchItem{URL: url, Error: engine.Describe(err)}
			} else {
				results[i] = engine.BatchItem{URL: url, Success: true, Data: info}
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // item errors are captured per outcome

	succeeded := 0
	for _, item := range results {
		if item.Success {
			succeeded++
		}
	}
	return &engine.BatchResult{
		Total:     len(results),
		Succeeded: succeeded,
		Failed:    len(results) - succeeded,
		Results:   results,
	}, nil
}

// Playlist extracts playlist metadata and a flat member list truncated to
// maxVideos (1-50, default 20).
func Playlist(ctx context.Context, url string, maxVideos int) (*engine.PlaylistInfo, error) {
	engine.IncrPlaylistRequests()

	if maxVideos == 0 {
		maxVideos = defaultPlaylist
	}
	if maxVideos < 1 || maxVideos > maxPlaylistItems {
		return nil, engine.Errorf(engine.KindBatch, "max_videos must be between 1 and %d", maxPlaylistItems)
	}

	key := engine.CacheKey("playlist", url, strconv.Itoa(maxVideos))
	if out, ok := engine.CacheLoadJSON[*engine.PlaylistInfo](ctx, key); ok {
		return out, nil
	}

	pc := engine.ResolvePlatform(engine.PlatformYouTube)
	args := Args{
		URL:            url,
		DumpSingleJSON: true,
		FlatPlaylist:   true,
		PlaylistEnd:    maxVideos,
		SkipDownload:   true,
		Quiet:          true,
		NoWarnings:     true,
		SocketTimeout:  30,
	}
	args.ApplyConfig(pc)

	stdout, err := runTool(ctx, Request{Args: args, Timeout: engine.Current().ExtractTimeout, Config: pc})
	if err != nil {
		return nil, rekindExtraction(err, engine.KindBatch)
	}

	info, err := parseInfo(stdout)
	if err != nil {
		return nil, rekindExtraction(err, engine.KindBatch)
	}

	videos := make([]engine.PlaylistEntry, 0, maxVideos)
	for _, e := range info.Entries {
		if len(videos) == maxVideos {
			break
		}
		if e.ID == "" {
			continue
		}
		entryURL := e.URL
		if entryURL == "" {
			entryURL = "https://www.youtube.com/watch?v=" + e.ID
		}
		videos = append(videos, engine.PlaylistEntry{
			VideoID:         e.ID,
			Title:           e.Title,
			URL:             entryURL,
			DurationSeconds: int(e.Duration),
			Channel:         firstNonEmpty(e.Uploader, e.Channel),
		})
	}

	count := info.PlaylistCount
	if count == 0 {
		count = len(videos)
	}
	result := &engine.PlaylistInfo{
		Title:      info.Title,
		PlaylistID: info.ID,
		Channel:    firstNonEmpty(info.Uploader, info.Channel),
		VideoCount: count,
		Videos:     videos,
	}
	engine.CacheStoreJSON(ctx, key, result)
	return result, nil
}
