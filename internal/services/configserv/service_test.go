package configserv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philanthropists/checked/internal/services/configserv"
	"github.com/Philanthropists/checked/pkg/shape"
)

func Test_ProcessAcceptsFullDocument(t *testing.T) {
	raw := []byte(`{
		"name": "sync",
		"debug": true,
		"max_retries": 5,
		"tags": ["a", "b"]
	}`)

	res := configserv.Process(raw)

	require.True(t, res.IsOk())
	cfg := res.MustValue()
	assert.Equal(t, "sync", cfg.Name)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
}

func Test_ProcessAppliesDefaults(t *testing.T) {
	res := configserv.Process([]byte(`{"name": "minimal"}`))

	require.True(t, res.IsOk())
	cfg := res.MustValue()
	assert.False(t, cfg.Debug)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Empty(t, cfg.Tags)
}

func Test_ProcessRejectsMalformedJSON(t *testing.T) {
	res := configserv.Process([]byte(`{"name":`))

	require.True(t, res.IsErr())
	assert.Contains(t, res.MustErr().Error(), "not valid json")
}

func Test_ProcessRejectsMissingName(t *testing.T) {
	res := configserv.Process([]byte(`{"debug": true}`))

	require.True(t, res.IsErr())
	assert.Contains(t, res.MustErr().Error(), "name")
}

func Test_ProcessRejectsWrongFieldTypes(t *testing.T) {
	cases := map[string]string{
		"name not a string":   `{"name": 7}`,
		"debug not a bool":    `{"name": "x", "debug": "yes"}`,
		"tags not strings":    `{"name": "x", "tags": [1, 2]}`,
		"retries not numeric": `{"name": "x", "max_retries": "many"}`,
	}

	for label, raw := range cases {
		res := configserv.Process([]byte(raw))

		require.True(t, res.IsErr(), label)
		err := res.MustErr()
		assert.True(t, shape.ErrMismatch.Has(err), "%s: %v", label, err)
	}
}

func Test_ProcessRejectsNegativeRetries(t *testing.T) {
	res := configserv.Process([]byte(`{"name": "x", "max_retries": -1}`))

	require.True(t, res.IsErr())
	assert.Contains(t, res.MustErr().Error(), "must not be negative")
}

func Test_LoadReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "disk"}`), 0o600))

	res := configserv.Load(path)

	require.True(t, res.IsOk())
	assert.Equal(t, "disk", res.MustValue().Name)
}

func Test_LoadReportsMissingFile(t *testing.T) {
	res := configserv.Load(filepath.Join(t.TempDir(), "absent.json"))

	require.True(t, res.IsErr())
	assert.Contains(t, res.MustErr().Error(), "could not read config file")
}
