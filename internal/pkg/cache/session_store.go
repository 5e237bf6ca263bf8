package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
)

// ErrSessionNotFound 分块上传会话不存在或已过期
var ErrSessionNotFound = errors.New("multipart session not found")

// MultipartSessionStore 保存进行中的分块上传会话 (uploadId -> 文件 / 存储 key)
type MultipartSessionStore struct {
	cache Cache
	ttl   time.Duration
}

func NewMultipartSessionStore(c Cache, ttl time.Duration) *MultipartSessionStore {
	return &MultipartSessionStore{cache: c, ttl: ttl}
}

func (s *MultipartSessionStore) Save(ctx context.Context, session *models.MultipartSession) error {
	if err := s.cache.Set(ctx, GenerateMultipartSessionKey(session.UploadID), session, s.ttl); err != nil {
		return fmt.Errorf("session store: save %s: %w", session.UploadID, err)
	}
	return nil
}

func (s *MultipartSessionStore) Load(ctx context.Context, uploadID string) (*models.MultipartSession, error) {
	var session models.MultipartSession
	if err := s.cache.Get(ctx, GenerateMultipartSessionKey(uploadID), &session); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session store: load %s: %w", uploadID, err)
	}
	return &session, nil
}

// Delete 删除不存在的会话不是错误
func (s *MultipartSessionStore) Delete(ctx context.Context, uploadID string) error {
	return s.cache.Del(ctx, GenerateMultipartSessionKey(uploadID))
}
