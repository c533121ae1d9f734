package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "sakura"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sakura"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: SAKURA_* (highest among these sources)
	v.SetEnvPrefix("sakura")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/sakura or ~/.local/share/sakura
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "sakura")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "sakura")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "sakura", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/sakura.db"},
		{Key: "output", Default: "plain", Comment: "Default output mode: plain, json, ndjson, pretty"},

		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for the search server"},
		{Key: "auth.token", Default: "", Comment: "Bearer token required by the search server"},

		{Key: "search.limit", Default: 100, Comment: "Default result page size"},
		{Key: "search.sort_by", Default: "updated_time", Comment: "Default sort field: title, created_time, updated_time, relevance"},
		{Key: "search.sort_order", Default: "desc", Comment: "Default sort order: asc or desc"},
		{Key: "search.batch_size", Default: 50, Comment: "Batch size for streamed search results"},
		{Key: "search.fuzzy_threshold", Default: 0.8, Comment: "Minimum similarity for fuzzy matches (0-1)"},
		{Key: "search.cache.enabled", Default: true, Comment: "Cache complete search responses"},
		{Key: "search.cache.ttl", Default: "5m", Comment: "How long cached responses stay valid"},
		{Key: "search.highlight.open", Default: "<mark>", Comment: "Opening marker for highlighted matches"},
		{Key: "search.highlight.close", Default: "</mark>", Comment: "Closing marker for highlighted matches"},
	}
}

// ResolveDBPath uses data_dir and defaults to return the sqlite DB file path.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "sakura.db")
}

// CheckConfigValidity reports every problem with the merged configuration at
// once rather than stopping at the first.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		problems = append(problems, "data_dir is required")
	}
	if v.GetInt("search.limit") <= 0 {
		problems = append(problems, "search.limit must be greater than 0")
	}
	if v.GetInt("search.batch_size") <= 0 {
		problems = append(problems, "search.batch_size must be greater than 0")
	}
	if th := v.GetFloat64("search.fuzzy_threshold"); th < 0 || th > 1 {
		problems = append(problems, "search.fuzzy_threshold must be between 0 and 1")
	}
	switch v.GetString("search.sort_by") {
	case "title", "created_time", "updated_time", "relevance":
	default:
		problems = append(problems, "search.sort_by must be one of title, created_time, updated_time, relevance")
	}
	switch v.GetString("search.sort_order") {
	case "asc", "desc":
	default:
		problems = append(problems, "search.sort_order must be asc or desc")
	}
	if ttl := v.GetString("search.cache.ttl"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err != nil || d < 0 {
			problems = append(problems, "search.cache.ttl must be a non-negative duration")
		}
	}
	switch v.GetString("output") {
	case "plain", "json", "ndjson", "pretty":
	default:
		problems = append(problems, "output must be one of plain, json, ndjson, pretty")
	}

	if len(problems) > 0 {
		return &ValidityError{Problems: problems}
	}
	return nil
}

// ValidityError aggregates every configuration problem found.
type ValidityError struct {
	Problems []string
}

func (e *ValidityError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}
