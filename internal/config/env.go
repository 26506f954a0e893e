package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted after the config file. They take precedence over the file.
const (
	EnvLogLevel       = "SITEBUILDER_LOG_LEVEL"
	EnvLogFormat      = "SITEBUILDER_LOG_FORMAT"
	EnvHighlightStyle = "SITEBUILDER_HIGHLIGHT_STYLE"
	EnvEmoji          = "SITEBUILDER_EMOJI"
	EnvHighlight      = "SITEBUILDER_HIGHLIGHT"
)

func applyEnvOverrides(s *Site) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		s.Log.Level = LogLevel(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		s.Log.Format = LogFormat(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvHighlightStyle)); v != "" {
		s.Markdown.HighlightStyle = v
	}
	if b, ok := envBool(EnvEmoji); ok {
		s.Markdown.Emoji = b
	}
	if b, ok := envBool(EnvHighlight); ok {
		s.Markdown.Highlight = b
	}
}

func envBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return b, true
}
