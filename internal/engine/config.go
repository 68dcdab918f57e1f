package engine

import "time"

// PlatformOverrides holds per-platform settings that take priority over the
// global ones. Empty fields fall through to the global value.
type PlatformOverrides struct {
	Proxy        string
	CookieSource string
	CookieFile   string
	SSHHost      string
}

// Config is the process-wide engine configuration. Built once in main from
// environment variables and treated as immutable afterwards.
type Config struct {
	// Global extractor settings, overridable per platform.
	Proxy        string
	CookieSource string
	CookieFile   string
	SSHHost      string
	Platforms    map[Platform]PlatformOverrides

	YtdlpPath        string
	MaxSessions      int64
	ExtractTimeout   time.Duration
	SubsTimeout      time.Duration
	BatchConcurrency int
}

var cfg Config

// Init stores the engine configuration snapshot. Call once at startup,
// before any tool handler runs.
func Init(c Config) {
	if c.YtdlpPath == "" {
		c.YtdlpPath = "yt-dlp"
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 8
	}
	if c.ExtractTimeout <= 0 {
		c.ExtractTimeout = 60 * time.Second
	}
	if c.SubsTimeout <= 0 {
		c.SubsTimeout = 120 * time.Second
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 3
	}
	cfg = c
}

// Current returns the active configuration snapshot.
func Current() Config {
	return cfg
}

// PlatformConfig is the effective extractor configuration for one platform,
// resolved per call. An empty SSHHost means local execution; empty cookie
// fields mean no cookies.
type PlatformConfig struct {
	Proxy        string
	CookieSource string
	CookieFile   string
	SSHHost      string
}

// ResolvePlatform computes the effective PlatformConfig for a platform.
// Precedence, most specific wins:
//
//	platform proxy > global proxy > none
//	platform cookie file > platform cookie source > global file > global source > none
//	platform SSH host > global SSH host > local execution
//
// Missing configuration is not an error; absent values select the
// no-cookie / no-proxy / local branch.
func (c Config) ResolvePlatform(p Platform) PlatformConfig {
	po := c.Platforms[p]

	pc := PlatformConfig{
		Proxy:   firstNonEmpty(po.Proxy, c.Proxy),
		SSHHost: firstNonEmpty(po.SSHHost, c.SSHHost),
	}

	// At the same specificity level a cookie file beats a cookie source,
	// but any platform-level cookie setting shadows both global ones.
	switch {
	case po.CookieFile != "":
		pc.CookieFile = po.CookieFile
	case po.CookieSource != "":
		pc.CookieSource = po.CookieSource
	case c.CookieFile != "":
		pc.CookieFile = c.CookieFile
	case c.CookieSource != "":
		pc.CookieSource = c.CookieSource
	}

	return pc
}

// ResolvePlatform resolves against the process-wide snapshot.
func ResolvePlatform(p Platform) PlatformConfig {
	return cfg.ResolvePlatform(p)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
