package cmd

import (
	"apiversions/config"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRoutesListsEveryMount(t *testing.T) {
	config.AppConfig = config.Configuration{}
	config.AppConfig.Versioning.DefaultMajor = 1
	config.AppConfig.Versioning.EnableLatest = true
	config.AppConfig.Server.Compress = true

	parent, err := buildVersionedApp()
	require.NoError(t, err)

	var out bytes.Buffer
	printRoutes(&out, parent)
	s := out.String()

	assert.Contains(t, s, "/v1_0/items")
	assert.Contains(t, s, "/v2_0/items/{itemID}")
	assert.Contains(t, s, "/latest/items")
	assert.Contains(t, s, "/health")
	assert.Contains(t, s, "3 mounts: /v1_0, /v2_0, /latest")
}
