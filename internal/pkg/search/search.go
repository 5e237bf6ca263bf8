// Package search 把文件投影同步到 Elasticsearch, 供检索使用
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Indexer 文件索引
type Indexer interface {
	IndexFile(ctx context.Context, file *models.File) error
}

// FileDocument 写入索引的文档
type FileDocument struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	FolderID      *string    `json:"folder_id,omitempty"`
	Name          string     `json:"name"`
	MimeType      string     `json:"mime_type"`
	MediaCategory string     `json:"media_category"`
	FileSizeBytes uint64     `json:"file_size_bytes"`
	Status        string     `json:"status"`
	Trashed       bool       `json:"trashed"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewFileDocument(f *models.File) FileDocument {
	return FileDocument{
		ID:            f.ID,
		ProjectID:     f.ProjectID,
		FolderID:      f.FolderID,
		Name:          f.Name,
		MimeType:      f.MimeType,
		MediaCategory: f.MediaCategory(),
		FileSizeBytes: f.FileSizeBytes,
		Status:        string(f.Status),
		Trashed:       f.IsTrashed(),
		DeletedAt:     f.DeletedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

type ElasticIndexer struct {
	client *elasticsearch.Client
	index  string
}

var _ Indexer = (*ElasticIndexer)(nil)

func NewElasticIndexer(client *elasticsearch.Client, index string) *ElasticIndexer {
	return &ElasticIndexer{client: client, index: index}
}

// IndexFile 以文件 id 作为文档 id 覆盖写入
func (e *ElasticIndexer) IndexFile(ctx context.Context, file *models.File) error {
	body, err := json.Marshal(NewFileDocument(file))
	if err != nil {
		return fmt.Errorf("search: marshal document: %w", err)
	}
	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: file.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("search: index %s: %w", file.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index %s: %s", file.ID, res.Status())
	}
	return nil
}

// NopIndexer 未启用 Elasticsearch 时使用
type NopIndexer struct{}

func (NopIndexer) IndexFile(context.Context, *models.File) error { return nil }
