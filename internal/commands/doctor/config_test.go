package doctor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/answer/internal/core/config"
)

func TestConfigCheck_NotLoaded(t *testing.T) {
	result := NewConfigCheck(nil, "").Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestConfigCheck_DefaultsAreValid(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Cwd = dir

	result := NewConfigCheck(&cfg, filepath.Join(dir, "missing.yaml")).Run(context.Background())

	for _, item := range result.Items {
		assert.Equal(t, StatusPass, item.Status, item.Label)
	}
	assert.Equal(t, "Config valid", result.Items[len(result.Items)-1].Label)
}

func TestConfigCheck_Warnings(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Cwd = dir
	cfg.History.Keep = 10

	result := NewConfigCheck(&cfg, filepath.Join(dir, "missing.yaml")).Run(context.Background())

	var warned []string
	for _, item := range result.Items {
		if item.Status == StatusWarn {
			warned = append(warned, item.Label)
		}
	}
	assert.Equal(t, []string{"History (history.keep)"}, warned)
}
