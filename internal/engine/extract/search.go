package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine"
)

const (
	defaultSearchResults = 5
	maxSearchResults     = 20
)

// Search runs a YouTube video search through the extractor's ytsearch
// pseudo-URL and returns flat result entries. maxResults 1-20, default 5.
func Search(ctx context.Context, query string, maxResults int) ([]engine.SearchResult, error) {
	engine.IncrSearchRequests()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, engine.Errorf(engine.KindSearch, "search query must be a non-empty string")
	}
	if maxResults == 0 {
		maxResults = defaultSearchResults
	}
	if maxResults < 1 || maxResults > maxSearchResults {
		return nil, engine.Errorf(engine.KindSearch, "max_results must be between 1 and %d", maxSearchResults)
	}

	key := engine.CacheKey("search", strings.ToLower(query), strconv.Itoa(maxResults))
	if out, ok := engine.CacheLoadJSON[[]engine.SearchResult](ctx, key); ok {
		return out, nil
	}

	pc := engine.ResolvePlatform(engine.PlatformYouTube)
	args := Args{
		URL:            fmt.Sprintf("ytsearch%d:%s", maxResults, query),
		DumpSingleJSON: true,
		FlatPlaylist:   true,
		SkipDownload:   true,
		Quiet:          true,
		NoWarnings:     true,
		SocketTimeout:  30,
	}
	args.ApplyConfig(pc)

	stdout, err := runTool(ctx, Request{Args: args, Timeout: engine.Current().ExtractTimeout, Config: pc})
	if err != nil {
		return nil, rekindExtraction(err, engine.KindSearch)
	}

	info, err := parseInfo(stdout)
	if err != nil {
		return nil, rekindExtraction(err, engine.KindSearch)
	}

	results := make([]engine.SearchResult, 0, len(info.Entries))
	for _, e := range info.Entries {
		if e.ID == "" || e.Title == "" {
			continue
		}
		url := e.URL
		if url == "" {
			url = "https://www.youtube.com/watch?v=" + e.ID
		}
		results = append(results, engine.SearchResult{
			VideoID:         e.ID,
			Title:           e.Title,
			URL:             url,
			DurationSeconds: int(e.Duration),
			Channel:         firstNonEmpty(e.Uploader, e.Channel),
			ViewCount:       e.ViewCount,
			ThumbnailURL:    e.Thumbnail,
			UploadDate:      e.UploadDate,
		})
	}

	engine.CacheStoreJSON(ctx, key, results)
	return results, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
