package engine

// VideoFormat is a single video/audio format entry reported by the extractor.
type VideoFormat struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution,omitempty"`
	Height     int     `json:"height,omitempty"`
	Width      int     `json:"width,omitempty"`
	FPS        float64 `json:"fps,omitempty"`
	VCodec     string  `json:"vcodec,omitempty"`
	ACodec     string  `json:"acodec,omitempty"`
	Filesize   int64   `json:"filesize,omitempty"`
	TBR        float64 `json:"tbr,omitempty"`
	URL        string  `json:"url,omitempty"`
	FormatNote string  `json:"format_note,omitempty"`
}

// VideoInfo is aggregated video metadata with selected format variants.
type VideoInfo struct {
	VideoID          string       `json:"video_id"`
	Title            string       `json:"title"`
	WebpageURL       string       `json:"webpage_url"`
	Platform         Platform     `json:"platform,omitempty"`
	Uploader         string       `json:"uploader,omitempty"`
	UploaderURL      string       `json:"uploader_url,omitempty"`
	DurationSeconds  int          `json:"duration_seconds,omitempty"`
	DurationString   string       `json:"duration_string,omitempty"`
	Description      string       `json:"description,omitempty"`
	ThumbnailURL     string       `json:"thumbnail_url,omitempty"`
	ViewCount        int64        `json:"view_count,omitempty"`
	LikeCount        int64        `json:"like_count,omitempty"`
	CommentCount     int64        `json:"comment_count,omitempty"`
	UploadDate       string       `json:"upload_date,omitempty"`
	BestQualityVideo *VideoFormat `json:"best_quality_video,omitempty"`
	SmallestVideo    *VideoFormat `json:"smallest_video,omitempty"`
	AudioOnly        *VideoFormat `json:"audio_only,omitempty"`
	SubtitlesSummary string       `json:"subtitles_summary,omitempty"`
}

// SearchResult is a single video search hit.
type SearchResult struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Channel         string `json:"channel,omitempty"`
	ViewCount       int64  `json:"view_count,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	UploadDate      string `json:"upload_date,omitempty"`
}

// TranscriptSegment is one subtitle cue with timing in seconds.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptResult is a structured transcript extraction result.
type TranscriptResult struct {
	VideoID         string              `json:"video_id"`
	Language        string              `json:"language"`
	IsAutoGenerated bool                `json:"is_auto_generated"`
	Segments        []TranscriptSegment `json:"segments,omitempty"`
	FullText        string              `json:"full_text"`
}

// AudioStreamInfo is a direct audio stream URL with metadata.
type AudioStreamInfo struct {
	VideoID  string  `json:"video_id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	ACodec   string  `json:"acodec,omitempty"`
	ABR      float64 `json:"abr,omitempty"`
	Filesize int64   `json:"filesize,omitempty"`
}

// PlaylistEntry is one member video of a playlist.
type PlaylistEntry struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Channel         string `json:"channel,omitempty"`
}

// PlaylistInfo is playlist metadata with a truncated video list.
type PlaylistInfo struct {
	Title      string          `json:"title"`
	PlaylistID string          `json:"playlist_id"`
	Channel    string          `json:"channel,omitempty"`
	VideoCount int             `json:"video_count"`
	Videos     []PlaylistEntry `json:"videos"`
}

// BatchItem is the per-URL outcome of a batch extraction. Exactly one of
// Data and Error is set.
type BatchItem struct {
	URL     string     `json:"url"`
	Success bool       `json:"success"`
	Data    *VideoInfo `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// BatchResult aggregates batch outcomes, preserving input order.
type BatchResult struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []BatchItem `json:"results"`
}

// HealthStatus reports extractor environment availability. Produced by
// health_check; never carries an error.
type HealthStatus struct {
	YtdlpAvailable  bool   `json:"ytdlp_available"`
	YtdlpVersion    string `json:"ytdlp_version,omitempty"`
	FFmpegAvailable bool   `json:"ffmpeg_available"`
	FFmpegPath      string `json:"ffmpeg_path,omitempty"`
	FFmpegMessage   string `json:"ffmpeg_message"`
	SSHHost         string `json:"ssh_host,omitempty"`
	CacheHits       int64  `json:"cache_hits"`
	CacheMisses     int64  `json:"cache_misses"`
}
