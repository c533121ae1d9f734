package config

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, 100, v.GetInt("search.limit"))
	assert.Equal(t, "updated_time", v.GetString("search.sort_by"))
	assert.Equal(t, "desc", v.GetString("search.sort_order"))
	assert.Equal(t, 0.8, v.GetFloat64("search.fuzzy_threshold"))
	assert.Equal(t, "5m", v.GetString("search.cache.ttl"))
	assert.Equal(t, "<mark>", v.GetString("search.highlight.open"))
	assert.NotEmpty(t, v.GetString("data_dir"))
}

func TestCheckConfigValidityValid(t *testing.T) {
	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	v.Set("data_dir", t.TempDir())

	assert.NoError(t, CheckConfigValidity(v))
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "")
	v.Set("search.limit", 0)
	v.Set("search.batch_size", -1)
	v.Set("search.fuzzy_threshold", 1.5)
	v.Set("search.sort_by", "color")
	v.Set("search.sort_order", "sideways")
	v.Set("search.cache.ttl", "soon")
	v.Set("output", "hologram")

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	expected := []string{
		"data_dir is required",
		"search.limit must be greater than 0",
		"search.batch_size must be greater than 0",
		"search.fuzzy_threshold must be between 0 and 1",
		"search.sort_by must be one of",
		"search.sort_order must be asc or desc",
		"search.cache.ttl must be a non-negative duration",
		"output must be one of",
	}
	for _, want := range expected {
		assert.True(t, strings.Contains(msg, want), "missing %q in %q", want, msg)
	}
}

func TestRenderDefaultTOML(t *testing.T) {
	out := RenderDefaultTOML()
	assert.Contains(t, out, "[search]")
	assert.Contains(t, out, `sort_by = "updated_time"`)
	assert.Contains(t, out, "limit = 100")
	assert.Contains(t, out, `cache.ttl = "5m"`)
}

func TestResolveDBPath(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "/tmp/sakura-test")
	assert.Equal(t, "/tmp/sakura-test/sakura.db", ResolveDBPath(v))
}
