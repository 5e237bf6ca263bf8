package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeElastic(t *testing.T, status int, seen *FileDocument, path *string) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*path = r.Method + " " + r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(seen)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticIndexerWritesDocument(t *testing.T) {
	var doc FileDocument
	var path string
	idx := NewElasticIndexer(newFakeElastic(t, http.StatusCreated, &doc, &path), "assets")

	file := &models.File{ID: "f1", ProjectID: "p1", Name: "clip.mp4", MimeType: "video/mp4", Status: models.StatusReady}
	require.NoError(t, idx.IndexFile(context.Background(), file))

	assert.Equal(t, "PUT /assets/_doc/f1", path)
	assert.Equal(t, "video", doc.MediaCategory)
	assert.Equal(t, "ready", doc.Status)
	assert.False(t, doc.Trashed)
}

func TestElasticIndexerReportsServerErrors(t *testing.T) {
	var doc FileDocument
	var path string
	idx := NewElasticIndexer(newFakeElastic(t, http.StatusBadRequest, &doc, &path), "assets")

	err := idx.IndexFile(context.Background(), &models.File{ID: "f1"})
	assert.Error(t, err)
}
