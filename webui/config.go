package webui

import (
	"os"
	"strconv"
)

const defaultMaxUploadBytes = 8 << 20

// Config holds server settings, loaded from the environment with defaults.
type Config struct {
	Addr           string
	MaxUploadBytes int64
}

// LoadConfig reads PORT and MAX_UPLOAD_BYTES.
func LoadConfig() *Config {
	addr := os.Getenv("PORT")
	if addr == "" {
		addr = ":8080"
	}

	maxUpload := int64(defaultMaxUploadBytes)
	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			maxUpload = v
		}
	}

	return &Config{
		Addr:           addr,
		MaxUploadBytes: maxUpload,
	}
}
