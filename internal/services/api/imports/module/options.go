package module

import (
	"unirank/internal/platform/config"
	"unirank/internal/services/api/imports/domain"
)

// Options holds the upload limits
type Options struct {
	MaxUploadBytes int64
	MaxConcurrent  int
}

// FromConfig reads the upload options from config with CORE_API_UPLOAD_ prefix
func FromConfig(cfg config.Conf) Options {
	uc := cfg.Prefix("CORE_API_UPLOAD_")
	return Options{
		MaxUploadBytes: int64(uc.MayInt("MAX_BYTES", domain.DefaultMaxUploadBytes)),
		MaxConcurrent:  uc.MayInt("CONCURRENCY", 4),
	}
}
