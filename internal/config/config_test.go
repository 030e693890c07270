package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STAGETRACK_DB", "")

	cfg := Load()
	assert.Empty(t, cfg.DBPath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STAGETRACK_DB", "/tmp/custom.db")

	cfg := Load()
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
}
