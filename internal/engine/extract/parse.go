package extract

import (
	"encoding/json"
	"fmt"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// infoDict mirrors the subset of the yt-dlp JSON document the engine uses.
type infoDict struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	WebpageURL   string       `json:"webpage_url"`
	Uploader     string       `json:"uploader"`
	UploaderURL  string       `json:"uploader_url"`
	Channel      string       `json:"channel"`
	Duration     float64      `json:"duration"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail"`
	ViewCount    int64        `json:"view_count"`
	LikeCount    int64        `json:"like_count"`
	CommentCount int64        `json:"comment_count"`
	UploadDate   string       `json:"upload_date"`
	Formats      []formatDict `json:"formats"`

	AutomaticCaptions map[string][]captionTrack `json:"automatic_captions"`
	Subtitles         map[string][]captionTrack `json:"subtitles"`

	// Flat-playlist / search fields.
	Entries       []entryDict `json:"entries"`
	PlaylistCount int         `json:"playlist_count"`
}

type formatDict struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	Height     int     `json:"height"`
	Width      int     `json:"width"`
	FPS        float64 `json:"fps"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	Filesize   int64   `json:"filesize"`
	TBR        float64 `json:"tbr"`
	ABR        float64 `json:"abr"`
	URL        string  `json:"url"`
	FormatNote string  `json:"format_note"`
}

type captionTrack struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Data string `json:"data"`
}

type entryDict struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
	Channel   string  `json:"channel"`
	ViewCount int64   `json:"view_count"`
	Thumbnail string  `json:"thumbnail"`

	UploadDate string `json:"upload_date"`
}

func parseInfo(data []byte) (*infoDict, error) {
	var info infoDict
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, engine.Errorf(engine.KindExtraction, "malformed extractor output: %v", err)
	}
	return &info, nil
}

func (f formatDict) hasVideo() bool { return f.VCodec != "" && f.VCodec != "none" }
func (f formatDict) hasAudio() bool { return f.ACodec != "" && f.ACodec != "none" }

func (f formatDict) toVideoFormat() *engine.VideoFormat {
	if f.FormatID == "" || f.Ext == "" {
		return nil
	}
	resolution := f.Resolution
	if resolution == "" && f.Width > 0 && f.Height > 0 {
		resolution = fmt.Sprintf("%dx%d", f.Width, f.Height)
	}
	return &engine.VideoFormat{
		FormatID:   f.FormatID,
		Ext:        f.Ext,
		Resolution: resolution,
		Height:     f.Height,
		Width:      f.Width,
		FPS:        f.FPS,
		VCodec:     f.VCodec,
		ACodec:     f.ACodec,
		Filesize:   f.Filesize,
		TBR:        f.TBR,
		URL:        f.URL,
		FormatNote: f.FormatNote,
	}
}

// selectFormats picks the best-quality video (highest height), the smallest
// video (lowest filesize, falling back to bitrate), and the best audio-only
// format (highest abr) from the format list.
func selectFormats(formats []formatDict) (best, smallest, audioOnly *engine.VideoFormat) {
	var bestF, smallestF, audioF *formatDict

	for i := range formats {
		f := &formats[i]
		if f.hasVideo() {
			if bestF == nil || f.Height > bestF.Height {
				bestF = f
			}
			if smallestF == nil || formatSize(*f) < formatSize(*smallestF) {
				smallestF = f
			}
		} else if f.hasAudio() {
			if audioF == nil || audioBitrate(*f) > audioBitrate(*audioF) {
				audioF = f
			}
		}
	}

	if bestF != nil {
		best = bestF.toVideoFormat()
	}
	if smallestF != nil {
		smallest = smallestF.toVideoFormat()
	}
	if audioF != nil {
		audioOnly = audioF.toVideoFormat()
	}
	return best, smallest, audioOnly
}

// formatSize orders video formats for the "smallest" pick: exact filesize
// wins, bitrate approximates it when missing, unknown sorts last.
func formatSize(f formatDict) float64 {
	if f.Filesize > 0 {
		return float64(f.Filesize)
	}
	if f.TBR > 0 {
		return f.TBR
	}
	return 1 << 62
}

func audioBitrate(f formatDict) float64 {
	if f.ABR > 0 {
		return f.ABR
	}
	return f.TBR
}

// selectAudio picks an audio-only format by quality selector: "best" takes
// the highest bitrate, "smallest" the lowest filesize (bitrate fallback).
func selectAudio(formats []formatDict, quality string) *formatDict {
	var pick *formatDict
	for i := range formats {
		f := &formats[i]
		if f.hasVideo() || !f.hasAudio() {
			continue
		}
		if pick == nil {
			pick = f
			continue
		}
		switch quality {
		case "smallest":
			if formatSize(*f) < formatSize(*pick) {
				pick = f
			}
		default: // best
			if audioBitrate(*f) > audioBitrate(*pick) {
				pick = f
			}
		}
	}
	return pick
}

// formatDuration renders seconds as M:SS or H:MM:SS.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	m, s := seconds/60, seconds%60
	h, m := m/60, m%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

const subtitleSummaryLimit = 2000

// subtitleSummary returns the leading slice of English auto-captions when the
// extractor inlined caption data; used as a cheap transcript preview.
func subtitleSummary(info *infoDict) string {
	for _, lang := range []string{"en", "en-orig"} {
		for _, track := range info.AutomaticCaptions[lang] {
			data := track.Data
			if data == "" {
				data = track.URL
			}
			if len(data) > 10 {
				if len(data) > subtitleSummaryLimit {
					return data[:subtitleSummaryLimit]
				}
				return data
			}
		}
	}
	return ""
}

// buildVideoInfo transforms a raw info dict into an immutable VideoInfo.
func buildVideoInfo(info *infoDict, platform engine.Platform) *engine.VideoInfo {
	best, smallest, audioOnly := selectFormats(info.Formats)
	duration := int(info.Duration)

	return &engine.VideoInfo{
		VideoID:          info.ID,
		Title:            info.Title,
		WebpageURL:       info.WebpageURL,
		Platform:         platform,
		Uploader:         info.Uploader,
		UploaderURL:      info.UploaderURL,
		DurationSeconds:  duration,
		DurationString:   formatDuration(duration),
		Description:      info.Description,
		ThumbnailURL:     info.Thumbnail,
		ViewCount:        info.ViewCount,
		LikeCount:        info.LikeCount,
		CommentCount:     info.CommentCount,
		UploadDate:       info.UploadDate,
		BestQualityVideo: best,
		SmallestVideo:    smallest,
		AudioOnly:        audioOnly,
		SubtitlesSummary: subtitleSummary(info),
	}
}
