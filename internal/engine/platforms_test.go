package engine

import "testing"

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		platform  Platform
		canonical string
		videoID   string
	}{
		{
			name:      "youtube watch",
			url:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			platform:  PlatformYouTube,
			canonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID:   "dQw4w9WgXcQ",
		},
		{
			name:      "youtube short link",
			url:       "https://youtu.be/dQw4w9WgXcQ",
			platform:  PlatformYouTube,
			canonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID:   "dQw4w9WgXcQ",
		},
		{
			name:      "youtube shorts",
			url:       "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			platform:  PlatformYouTube,
			canonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID:   "dQw4w9WgXcQ",
		},
		{
			name:      "youtube embed",
			url:       "https://www.youtube.com/embed/dQw4w9WgXcQ",
			platform:  PlatformYouTube,
			canonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID:   "dQw4w9WgXcQ",
		},
		{
			name:      "youtube mobile",
			url:       "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			platform:  PlatformYouTube,
			canonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID:   "dQw4w9WgXcQ",
		},
		{
			name:      "youtube without scheme",
			url:       "youtube.com/watch?v=dQw4w9WgXcQ",
			platform:  PlatformYouTube,
			canonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID:   "dQw4w9WgXcQ",
		},
		{
			name:      "tiktok video",
			url:       "https://www.tiktok.com/@someuser/video/7123456789012345678",
			platform:  PlatformTikTok,
			canonical: "https://www.tiktok.com/@someuser/video/7123456789012345678",
			videoID:   "7123456789012345678",
		},
		{
			name:      "tiktok short link keeps URL and has no ID",
			url:       "https://vm.tiktok.com/ZMabcdefg",
			platform:  PlatformTikTok,
			canonical: "https://vm.tiktok.com/ZMabcdefg",
		},
		{
			name:      "douyin video",
			url:       "https://www.douyin.com/video/7123456789012345678",
			platform:  PlatformDouyin,
			canonical: "https://www.douyin.com/video/7123456789012345678",
			videoID:   "7123456789012345678",
		},
		{
			name:      "douyin modal id canonicalizes",
			url:       "https://www.douyin.com/user/MS4wLjABAAAA?modal_id=7123456789012345678",
			platform:  PlatformDouyin,
			canonical: "https://www.douyin.com/video/7123456789012345678",
			videoID:   "7123456789012345678",
		},
		{
			name:      "surrounding whitespace ignored",
			url:       "  https://youtu.be/dQw4w9WgXcQ  ",
			platform:  PlatformYouTube,
			canonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID:   "dQw4w9WgXcQ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DetectPlatform(tt.url)
			if err != nil {
				t.Fatalf("DetectPlatform(%q) error: %v", tt.url, err)
			}
			if v.Platform != tt.platform {
				t.Errorf("platform = %q, want %q", v.Platform, tt.platform)
			}
			if v.CanonicalURL != tt.canonical {
				t.Errorf("canonical = %q, want %q", v.CanonicalURL, tt.canonical)
			}
			if v.VideoID != tt.videoID {
				t.Errorf("video_id = %q, want %q", v.VideoID, tt.videoID)
			}
		})
	}
}

func TestDetectPlatformInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"https://example.com/video/123",
		"https://vimeo.com/12345678",
		"https://www.youtube.com/watch?v=short", // ID too short
		"not a url at all",
	}
	for _, url := range invalid {
		_, err := DetectPlatform(url)
		if err == nil {
			t.Errorf("DetectPlatform(%q) expected error", url)
			continue
		}
		if !IsKind(err, KindInvalidURL) {
			t.Errorf("DetectPlatform(%q) kind = %v, want InvalidURL", url, err)
		}
	}
}
