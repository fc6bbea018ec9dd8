package main

import (
	"testing"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingApiKeyIsFatal(t *testing.T) {
	loader, _ := cfg.NewMockLoader()
	config, err := loader.Load()
	require.NoError(t, err)

	// The mock config ships without a key on purpose
	assert.Error(t, checkCredentials(config))

	config.YoutubeApi.ApiKey = "test-key"
	assert.NoError(t, checkCredentials(config))
}
