package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "archive", "output", "seed", "train-ratio", "store", "sqlite-dsn", "prior-smoothing", "log-level", "log-json"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRootCmdInvalidConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--train-ratio", "1.5"})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "train_ratio")
}

func TestRootCmdMissingArchive(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--archive", filepath.Join(t.TempDir(), "none.zip"), "--log-level", "error"})
	assert.Error(t, cmd.Execute())
}
