package extract

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// VideoInfo validates the URL, checks the cache, and extracts full video
// metadata with selected format variants. Results are cached by canonical
// URL for the configured TTL; failures are never cached.
func VideoInfo(ctx context.Context, url string) (*engine.VideoInfo, error) {
	v, err := engine.DetectPlatform(url)
	if err != nil {
		return nil, err
	}

	key := engine.CacheKey("video_info", v.CanonicalURL)
	if out, ok := engine.CacheLoadJSON[*engine.VideoInfo](ctx, key); ok {
		return out, nil
	}

	pc := engine.ResolvePlatform(v.Platform)
	args := defaultArgs(v.CanonicalURL)
	args.WriteAutoSubs = true
	args.SubLangs = []string{"en"}
	args.ApplyConfig(pc)

	stdout, err := runTool(ctx, Request{Args: args, Timeout: engine.Current().ExtractTimeout, Config: pc})
	if err != nil {
		return nil, err
	}

	info, err := parseInfo(stdout)
	if err != nil {
		return nil, err
	}

	result := buildVideoInfo(info, v.Platform)
	engine.CacheStoreJSON(ctx, key, result)
	return result, nil
}

// rekindExtraction relabels generic extraction failures for operations with
// their own taxonomy kind (search, playlist). Specific kinds (geo
// restriction, unavailable video, SSH transport) pass through unchanged.
func rekindExtraction(err error, to engine.Kind) error {
	var e *engine.Error
	if errors.As(err, &e) && e.Kind == engine.KindExtraction {
		return &engine.Error{Kind: to, Message: e.Message}
	}
	return err
}
