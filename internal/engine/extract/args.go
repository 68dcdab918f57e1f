// Package extract wraps the yt-dlp extractor tool: it builds command lines,
// runs them locally or on a remote host over SSH, parses the JSON output
// into typed records, and classifies failures.
package extract

import (
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// Args describes one yt-dlp invocation. The zero value produces a bare
// command line with just the target URL.
type Args struct {
	URL string

	DumpJSON       bool // --dump-json: one JSON document per video
	DumpSingleJSON bool // -J: a single JSON document for playlists/searches
	SkipDownload   bool
	NoPlaylist     bool
	Quiet          bool
	NoWarnings     bool
	FlatPlaylist   bool
	PlaylistEnd    int
	SocketTimeout  int
	WriteSubs      bool
	WriteAutoSubs  bool
	SubLangs       []string
	OutputTemplate string

	Proxy        string
	CookieSource string
	CookieFile   string
}

// defaultArgs returns the base options shared by all metadata extractions.
func defaultArgs(url string) Args {
	return Args{
		URL:           url,
		DumpJSON:      true,
		SkipDownload:  true,
		NoPlaylist:    true,
		Quiet:         true,
		NoWarnings:    true,
		SocketTimeout: 30,
	}
}

// ApplyConfig fills proxy and cookie options from a resolved PlatformConfig.
// A cookie file wins over a cookie source.
func (a *Args) ApplyConfig(pc engine.PlatformConfig) {
	a.Proxy = pc.Proxy
	if pc.CookieFile != "" {
		a.CookieFile = pc.CookieFile
		a.CookieSource = ""
	} else {
		a.CookieSource = pc.CookieSource
	}
}

// CLI converts the options to yt-dlp command-line arguments, excluding the
// binary name. Pure function; flag order is fixed so identical requests
// produce identical command lines.
func (a Args) CLI() []string {
	var args []string

	if a.DumpJSON {
		args = append(args, "--dump-json")
	}
	if a.DumpSingleJSON {
		args = append(args, "--dump-single-json")
	}
	if a.SkipDownload {
		args = append(args, "--skip-download")
	}
	if a.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if a.Quiet {
		args = append(args, "--quiet")
	}
	if a.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if a.FlatPlaylist {
		args = append(args, "--flat-playlist")
	}
	if a.PlaylistEnd > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(a.PlaylistEnd))
	}
	if a.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(a.SocketTimeout))
	}
	if a.WriteSubs {
		args = append(args, "--write-subs")
	}
	if a.WriteAutoSubs {
		args = append(args, "--write-auto-subs")
	}
	if len(a.SubLangs) > 0 {
		args = append(args, "--sub-langs", strings.Join(a.SubLangs, ","))
	}
	if a.OutputTemplate != "" {
		args = append(args, "--output", a.OutputTemplate)
	}
	if a.Proxy != "" {
		args = append(args, "--proxy", a.Proxy)
	}
	if a.CookieFile != "" {
		args = append(args, "--cookies", a.CookieFile)
	} else if a.CookieSource != "" {
		args = append(args, "--cookies-from-browser", a.CookieSource)
	}

	return append(args, a.URL)
}
