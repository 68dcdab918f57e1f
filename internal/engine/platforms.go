package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Platform identifies a supported video platform.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTikTok  Platform = "tiktok"
	PlatformDouyin  Platform = "douyin"
)

// Platforms lists every supported platform, in registry order.
var Platforms = []Platform{PlatformYouTube, PlatformTikTok, PlatformDouyin}

// URLValidation is the result of matching a URL against the platform registry.
type URLValidation struct {
	Platform     Platform `json:"platform"`
	CanonicalURL string   `json:"canonical_url"`
	VideoID      string   `json:"video_id,omitempty"`
}

type platformPattern struct {
	platform Platform
	re       *regexp.Regexp
	hasID    bool
}

// Short-link patterns (vm.tiktok, v.douyin) carry no extractable video ID;
// the canonical URL stays as given and yt-dlp follows the redirect.
var platformPatterns = []platformPattern{
	{PlatformYouTube, regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`), true},
	{PlatformYouTube, regexp.MustCompile(`(?:https?://)?youtu\.be/([a-zA-Z0-9_-]{11})`), true},
	{PlatformYouTube, regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`), true},
	{PlatformYouTube, regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`), true},
	{PlatformYouTube, regexp.MustCompile(`(?:https?://)?m\.youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`), true},
	{PlatformTikTok, regexp.MustCompile(`(?:https?://)?(?:www\.)?tiktok\.com/@[^/]+/video/(\d+)`), true},
	{PlatformTikTok, regexp.MustCompile(`(?:https?://)?vm\.tiktok\.com/[a-zA-Z0-9]+`), false},
	{PlatformDouyin, regexp.MustCompile(`(?:https?://)?(?:www\.)?douyin\.com/video/(\d+)`), true},
	{PlatformDouyin, regexp.MustCompile(`(?:https?://)?(?:www\.)?douyin\.com/user/[^?]+\?.*modal_id=(\d+)`), true},
	{PlatformDouyin, regexp.MustCompile(`(?:https?://)?v\.douyin\.com/[a-zA-Z0-9]+`), false},
}

// DetectPlatform matches a URL against the platform registry and returns the
// platform, a canonical URL, and the video ID when the pattern captures one.
// Runs before any extraction attempt; the returned error carries KindInvalidURL.
func DetectPlatform(rawURL string) (URLValidation, error) {
	stripped := strings.TrimSpace(rawURL)
	if stripped == "" {
		return URLValidation{}, Errorf(KindInvalidURL, "URL must be a non-empty string")
	}

	for _, p := range platformPatterns {
		m := p.re.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		var videoID string
		if p.hasID {
			videoID = m[1]
		}
		canonical := stripped
		switch {
		case p.platform == PlatformYouTube:
			canonical = fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
		case p.platform == PlatformDouyin && videoID != "":
			canonical = fmt.Sprintf("https://www.douyin.com/video/%s", videoID)
		}
		return URLValidation{Platform: p.platform, CanonicalURL: canonical, VideoID: videoID}, nil
	}

	return URLValidation{}, Errorf(KindInvalidURL, "unsupported or invalid URL: %s", stripped)
}
