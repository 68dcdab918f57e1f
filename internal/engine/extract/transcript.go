package extract

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// Transcript extracts subtitles for a video and parses them into timed
// segments. lang defaults to "en"; format "text" returns only the joined
// text, "segments" includes per-cue timing. Subtitle files are staged in a
// per-call temporary directory, local or remote depending on platform
// configuration, and the directory is removed on every exit path.
func Transcript(ctx context.Context, url, lang, format string) (*engine.TranscriptResult, error) {
	engine.IncrTranscriptRequests()

	if lang == "" {
		lang = "en"
	}
	switch format {
	case "":
		format = "text"
	case "text", "segments":
	default:
		return nil, engine.Errorf(engine.KindExtraction, "format must be \"text\" or \"segments\", got %q", format)
	}

	v, err := engine.DetectPlatform(url)
	if err != nil {
		return nil, err
	}

	key := engine.CacheKey("transcript", v.CanonicalURL, lang, format)
	if out, ok := engine.CacheLoadJSON[*engine.TranscriptResult](ctx, key); ok {
		return out, nil
	}

	pc := engine.ResolvePlatform(v.Platform)
	args := defaultArgs(v.CanonicalURL)
	args.WriteSubs = true
	args.WriteAutoSubs = true
	args.SubLangs = []string{lang, lang + "-orig"}
	args.ApplyConfig(pc)

	var infoJSON, raw []byte
	if pc.SSHHost != "" {
		infoJSON, raw, err = remoteSubtitles(ctx, pc.SSHHost, args)
	} else {
		infoJSON, raw, err = localSubtitles(ctx, args)
	}
	if err != nil {
		return nil, err
	}

	info, err := parseInfo(infoJSON)
	if err != nil {
		return nil, err
	}

	segments := parseSubtitles(string(raw))
	if len(segments) == 0 {
		return nil, engine.Errorf(engine.KindExtraction, "no subtitles available for language %q", lang)
	}

	result := &engine.TranscriptResult{
		VideoID:         info.ID,
		Language:        lang,
		IsAutoGenerated: len(info.Subtitles[lang]) == 0,
		FullText:        segmentsText(segments),
	}
	if format == "segments" {
		result.Segments = segments
	}
	engine.CacheStoreJSON(ctx, key, result)
	return result, nil
}

// localSubtitles runs the extractor with subtitle files staged in a local
// temp directory and reads them back.
func localSubtitles(ctx context.Context, args Args) (infoJSON, raw []byte, err error) {
	dir, err := os.MkdirTemp("", "govideo-subs-*")
	if err != nil {
		return nil, nil, engine.Errorf(engine.KindExtraction, "creating subtitle workdir: %v", err)
	}
	defer os.RemoveAll(dir)

	args.OutputTemplate = filepath.Join(dir, "%(id)s.%(ext)s")
	infoJSON, err = runTool(ctx, Request{Args: args, Timeout: engine.Current().SubsTimeout})
	if err != nil {
		return nil, nil, err
	}

	raw = readSubtitleFiles(dir)
	return infoJSON, raw, nil
}

// remoteSubtitles stages subtitle files in a scoped remote temp directory,
// streams them back over the SSH channel, and cleans the directory up even
// when the command failed or timed out.
func remoteSubtitles(ctx context.Context, host string, args Args) (infoJSON, raw []byte, err error) {
	engine.IncrExtractRequests()

	ctx, cancel := context.WithTimeout(ctx, engine.Current().SubsTimeout)
	defer cancel()

	// Slot acquisition shares the call deadline, as in runToolExec.
	release, err := acquireSession(ctx)
	if err != nil {
		engine.IncrExtractErrors()
		return nil, nil, err
	}
	defer release()

	sess, err := openSession(ctx, host)
	if err != nil {
		engine.IncrExtractErrors()
		return nil, nil, err
	}
	defer sess.Close()

	args.OutputTemplate = "%(id)s.%(ext)s" // relative to the session dir
	stdout, stderr, err := sess.Run(ctx, args)
	if err != nil {
		engine.IncrExtractErrors()
		return nil, nil, classifyRun(ctx, stderr, err)
	}

	raw, err = sess.ReadGlob(ctx, "*.vtt")
	if err != nil {
		engine.IncrExtractErrors()
		return nil, nil, err
	}
	if len(raw) == 0 {
		if raw, err = sess.ReadGlob(ctx, "*.srt"); err != nil {
			engine.IncrExtractErrors()
			return nil, nil, err
		}
	}
	return stdout, raw, nil
}

// readSubtitleFiles concatenates any .vtt/.srt files the extractor wrote.
func readSubtitleFiles(dir string) []byte {
	var out []byte
	for _, pattern := range []string{"*.vtt", "*.srt"} {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		for _, m := range matches {
			if data, err := os.ReadFile(m); err == nil {
				out = append(out, data...)
				out = append(out, '\n')
			}
		}
		if len(out) > 0 {
			break
		}
	}
	return out
}

// --- SRT/VTT parsing ---

var (
	htmlTagRE      = regexp.MustCompile(`<[^>]+>`)
	vttTimestampRE = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)
	srtSequenceRE  = regexp.MustCompile(`^\d+\s*$`)
	timestampRE    = regexp.MustCompile(`(\d{1,2}:\d{2}:\d{2}[.,]\d{3})\s*-->\s*(\d{1,2}:\d{2}:\d{2}[.,]\d{3})`)
)

// parseTimestamp converts HH:MM:SS.mmm or MM:SS.mmm to seconds.
func parseTimestamp(ts string) float64 {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(ts), ",", "."), ":")
	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		total = total*60 + v
	}
	return total
}

// cleanText strips HTML tags and inline VTT timestamp tags.
func cleanText(text string) string {
	text = vttTimestampRE.ReplaceAllString(text, "")
	text = htmlTagRE.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// parseSubtitles parses SRT or VTT subtitle text into timed segments.
// Consecutive cues with identical text, common in auto-generated subtitles,
// are merged into one segment spanning both.
func parseSubtitles(raw string) []engine.TranscriptSegment {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var segments []engine.TranscriptSegment
	lines := strings.Split(raw, "\n")
	i := 0

	// Skip VTT header block
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "WEBVTT") {
		i = 1
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			i++
		}
	}

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || srtSequenceRE.MatchString(line) {
			i++
			continue
		}

		m := timestampRE.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}

		start := parseTimestamp(m[1])
		end := parseTimestamp(m[2])
		i++

		var textParts []string
		for i < len(lines) {
			tl := strings.TrimSpace(lines[i])
			if tl == "" || timestampRE.MatchString(tl) || srtSequenceRE.MatchString(tl) {
				break
			}
			if cleaned := cleanText(tl); cleaned != "" {
				textParts = append(textParts, cleaned)
			}
			i++
		}

		text := strings.Join(textParts, " ")
		if text == "" {
			continue
		}

		if n := len(segments); n > 0 && segments[n-1].Text == text {
			segments[n-1].End = end
		} else {
			segments = append(segments, engine.TranscriptSegment{Start: start, End: end, Text: text})
		}
	}

	return segments
}

// segmentsText concatenates segment texts into a single string.
func segmentsText(segments []engine.TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}
