/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsc.toml")
	require.NoError(t, os.WriteFile(path, []byte("register_count = 32\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.RegisterCount)
	assert.Equal(t, Default().BufferSize, cfg.BufferSize)
}

func TestValidateRejectsBadRegisterCount(t *testing.T) {
	cfg := Default()
	cfg.RegisterCount = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsReservedCountOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.ReservedCount = cfg.RegisterCount
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsTokenSizeNotSmallerThanBuffer(t *testing.T) {
	cfg := Default()
	cfg.MaxTokenSize = cfg.BufferSize
	assert.Error(t, cfg.Validate())
}
