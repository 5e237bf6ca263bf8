package setup

import (
	"testing"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorSelection(t *testing.T) {
	d, err := dialector(&config.DatabaseConfig{Driver: "mysql", DSN: "user:pass@tcp(localhost:3306)/db"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = dialector(&config.DatabaseConfig{Driver: "postgres", DSN: "host=localhost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitIndexerDisabled(t *testing.T) {
	indexer, err := InitIndexer(&config.ElasticsearchConfig{Enabled: false})
	require.NoError(t, err)
	assert.NotNil(t, indexer)
}
