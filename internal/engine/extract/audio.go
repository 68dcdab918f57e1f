package extract

import (
	"context"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// AudioURL extracts a direct audio stream URL for a video. Quality "best"
// selects the highest-bitrate audio-only format, "smallest" the lowest
// filesize one.
func AudioURL(ctx context.Context, url, quality string) (*engine.AudioStreamInfo, error) {
	engine.IncrAudioRequests()

	switch quality {
	case "":
		quality = "best"
	case "best", "smallest":
	default:
		return nil, engine.Errorf(engine.KindExtraction, "quality must be \"best\" or \"smallest\", got %q", quality)
	}

	v, err := engine.DetectPlatform(url)
	if err != nil {
		return nil, err
	}

	key := engine.CacheKey("audio_url", v.CanonicalURL, quality)
	if out, ok := engine.CacheLoadJSON[*engine.AudioStreamInfo](ctx, key); ok {
		return out, nil
	}

	pc := engine.ResolvePlatform(v.Platform)
	args := defaultArgs(v.CanonicalURL)
	args.ApplyConfig(pc)

	stdout, err := runTool(ctx, Request{Args: args, Timeout: engine.Current().ExtractTimeout, Config: pc})
	if err != nil {
		return nil, err
	}

	info, err := parseInfo(stdout)
	if err != nil {
		return nil, err
	}

	pick := selectAudio(info.Formats, quality)
	if pick == nil {
		return nil, engine.Errorf(engine.KindExtraction, "no audio-only format found for %s", v.CanonicalURL)
	}

	result := &engine.AudioStreamInfo{
		VideoID:  info.ID,
		Title:    info.Title,
		URL:      pick.URL,
		FormatID: pick.FormatID,
		Ext:      pick.Ext,
		ACodec:   pick.ACodec,
		ABR:      pick.ABR,
		Filesize: pick.Filesize,
	}
	engine.CacheStoreJSON(ctx, key, result)
	return result, nil
}
