package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMissingFileIsConfigError(t *testing.T) {
	assert.Equal(t, 1, run(nil))
}

func TestRunUnknownExtensionIsConfigError(t *testing.T) {
	assert.Equal(t, 1, run([]string{"data.unknown"}))
}

func TestRunMissingBackingFileIsBackendError(t *testing.T) {
	assert.Equal(t, 2, run([]string{"/no/such/file.zip"}))
}

func TestRunExplicitTypeOverridesExtension(t *testing.T) {
	assert.Equal(t, 2, run([]string{"-t", "zip", "/no/such/file.json"}))
}

func TestRunUnknownExplicitTypeIsConfigError(t *testing.T) {
	assert.Equal(t, 1, run([]string{"-t", "bogus", "data.unknown"}))
}
