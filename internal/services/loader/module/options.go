package module

import (
	"time"

	"unirank/internal/platform/config"
)

// DefaultRemoteURL is the published ranking sheet cohort refreshes read from
const DefaultRemoteURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vT4lglkLyg-yV8giRzuQaGj1SESG6DDS0zwbHhooi8m77SOJ2OlMwO7dGlkv4pHs9R195Uw7hHzUUJb/pub?output=csv"

// Options holds the loader configuration
type Options struct {
	RemoteURL    string
	FetchTimeout time.Duration

	// RefreshCron is a six field (seconds first) schedule; empty disables it
	RefreshCron string
	// RefreshYear is the cohort the schedule reloads; 0 means the current year
	RefreshYear int

	Seed bool
}

// FromConfig reads the loader options from config with CORE_IMPORT_ prefix
func FromConfig(cfg config.Conf) Options {
	ic := cfg.Prefix("CORE_IMPORT_")
	return Options{
		RemoteURL:    ic.MayURL("REMOTE_URL", DefaultRemoteURL),
		FetchTimeout: ic.MayDuration("TIMEOUT", 30*time.Second),
		RefreshCron:  ic.MayString("REFRESH_CRON", ""),
		RefreshYear:  ic.MayInt("REFRESH_YEAR", 0),
		Seed:         ic.MayBool("SEED", true),
	}
}
