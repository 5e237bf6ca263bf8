package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/cache"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/storage"
	"github.com/3Eeeecho/go-mediavault/internal/repositories"
	"github.com/3Eeeecho/go-mediavault/internal/services/quota"
	"github.com/3Eeeecho/go-mediavault/internal/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	mu        sync.Mutex
	objects   map[string]int64
	uploads   map[string]string
	nextID    int
	aborted   []string
	deleted   []string
	copies    int
	urlErr    error
	copyErr   error
	headErr   error
	signErr   error
	signCalls int
}

var _ storage.Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{objects: map[string]int64{}, uploads: map[string]string{}}
}

func (g *fakeGateway) put(key string, size int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[key] = size
}

func (g *fakeGateway) has(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.objects[key]
	return ok
}

func (g *fakeGateway) GetUploadURL(ctx context.Context, key string) (storage.PresignedURL, error) {
	if g.urlErr != nil {
		return storage.PresignedURL{}, g.urlErr
	}
	return storage.PresignedURL{URL: "https://upload.test/" + key, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (g *fakeGateway) GetDownloadURL(ctx context.Context, key string, ttl time.Duration) (storage.PresignedURL, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signCalls++
	if g.signErr != nil {
		return storage.PresignedURL{}, g.signErr
	}
	if _, ok := g.objects[key]; !ok {
		return storage.PresignedURL{}, storage.ErrObjectNotFound
	}
	return storage.PresignedURL{URL: "https://download.test/" + key, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (g *fakeGateway) HeadObject(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	if g.headErr != nil {
		return nil, g.headErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	size, ok := g.objects[key]
	if !ok {
		return nil, nil
	}
	return &storage.ObjectInfo{Size: size}, nil
}

func (g *fakeGateway) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	n, err := io.Copy(io.Discard, reader)
	if err != nil {
		return err
	}
	g.put(key, n)
	return nil
}

func (g *fakeGateway) DeleteObject(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.objects, key)
	g.deleted = append(g.deleted, key)
	return nil
}

func (g *fakeGateway) CopyObject(ctx context.Context, sourceKey, destKey string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.copies++
	if g.copyErr != nil {
		return g.copyErr
	}
	size, ok := g.objects[sourceKey]
	if !ok {
		return fmt.Errorf("no such key %s", sourceKey)
	}
	g.objects[destKey] = size
	return nil
}

func (g *fakeGateway) InitChunkedUpload(ctx context.Context, key string) (storage.ChunkedUpload, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	id := fmt.Sprintf("upload-%d", g.nextID)
	g.uploads[id] = key
	return storage.ChunkedUpload{UploadID: id, Key: key}, nil
}

func (g *fakeGateway) GetChunkURLs(ctx context.Context, uploadID, key string, chunkCount int) ([]storage.ChunkURL, error) {
	urls := make([]storage.ChunkURL, 0, chunkCount)
	for i := 1; i <= chunkCount; i++ {
		urls = append(urls, storage.ChunkURL{PartNumber: i, URL: fmt.Sprintf("https://upload.test/%s?partNumber=%d&uploadId=%s", key, i, uploadID)})
	}
	return urls, nil
}

func (g *fakeGateway) CompleteChunkedUpload(ctx context.Context, uploadID, key string, parts []storage.CompletedPart) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.uploads[uploadID] != key {
		return errors.New("NoSuchUpload")
	}
	delete(g.uploads, uploadID)
	g.objects[key] = int64(len(parts))
	return nil
}

func (g *fakeGateway) AbortChunkedUpload(ctx context.Context, uploadID, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.uploads, uploadID)
	g.aborted = append(g.aborted, uploadID)
	return nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	jobs   []models.ProcessingJob
	frames []models.FrameCaptureRequest
	err    error
}

func (d *fakeDispatcher) EnqueueProcessingJobs(ctx context.Context, job models.ProcessingJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

func (d *fakeDispatcher) EnqueueFrameCapture(ctx context.Context, req models.FrameCaptureRequest) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return "", d.err
	}
	d.frames = append(d.frames, req)
	return "job-" + req.AssetID, nil
}

func (d *fakeDispatcher) jobCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.jobs)
}

type fakeIndexer struct {
	mu      sync.Mutex
	indexed map[string]models.File
}

func (i *fakeIndexer) IndexFile(ctx context.Context, file *models.File) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.indexed == nil {
		i.indexed = map[string]models.File{}
	}
	i.indexed[file.ID] = *file
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	db         *gorm.DB
	gateway    *fakeGateway
	dispatcher *fakeDispatcher
	indexer    *fakeIndexer
	effects    *SideEffects
	ledger     *quota.Ledger
	files      repositories.FileRepository
	sessions   *cache.MultipartSessionStore
	clock      *fakeClock
	uploads    UploadService
	fileSvc    FileService
	resolver   *ThumbnailResolver
	cfg        config.UploadConfig
}

// 两个账户: acc-1 (配额 10000, 项目 p1, 文件夹 fo1) 与 acc-2 (配额 100, 项目 p2, 文件夹 fo2).
// u1 是两个项目的成员, u2 只是 p2 的成员.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, "acc-1", "p1", "u1", 10000)
	testutil.Seed(t, db, "acc-2", "p2", "u1", 100)
	require.NoError(t, db.Create(&models.ProjectMember{ProjectID: "p2", UserID: "u2"}).Error)
	require.NoError(t, db.Create(&models.Folder{ID: "fo1", ProjectID: "p1", Name: "raw"}).Error)
	require.NoError(t, db.Create(&models.Folder{ID: "fo2", ProjectID: "p2", Name: "raw"}).Error)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redisCache := cache.NewRedisCache(client)

	cfg := config.UploadConfig{
		MaxFileSizeBytes:    1 << 20,
		ChunkSizeBytes:      5 << 20,
		DownloadURLTTL:      time.Hour,
		RestoreWindow:       30 * 24 * time.Hour,
		ThumbnailSize:       "medium",
		MultipartSessionTTL: time.Hour,
	}

	env := &testEnv{
		db:         db,
		gateway:    newFakeGateway(),
		dispatcher: &fakeDispatcher{},
		indexer:    &fakeIndexer{},
		effects:    NewSideEffects(time.Second),
		ledger:     quota.NewLedger(db),
		files:      repositories.NewFileRepository(db),
		sessions:   cache.NewMultipartSessionStore(redisCache, cfg.MultipartSessionTTL),
		clock:      &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		cfg:        cfg,
	}
	env.resolver = NewThumbnailResolver(env.gateway, cache.NewURLCache(redisCache), cfg.ThumbnailSize, cfg.DownloadURLTTL)
	deps := Deps{
		TM:         NewTransactionManager(db),
		Files:      env.files,
		Projects:   repositories.NewProjectRepository(db),
		Ledger:     env.ledger,
		Gateway:    env.gateway,
		Sessions:   env.sessions,
		Dispatcher: env.dispatcher,
		Indexer:    env.indexer,
		Effects:    env.effects,
		Thumbnails: env.resolver,
		Config:     cfg,
		Now:        env.clock.Now,
	}
	env.uploads = NewUploadService(deps)
	env.fileSvc = NewFileService(deps)
	t.Cleanup(env.effects.Wait)
	return env
}

func (e *testEnv) used(t *testing.T, accountID string) uint64 {
	t.Helper()
	account, err := e.ledger.Usage(context.Background(), accountID)
	require.NoError(t, err)
	return account.StorageUsedBytes
}

func (e *testEnv) reload(t *testing.T, fileID string) *models.File {
	t.Helper()
	file, err := e.files.FindByID(context.Background(), fileID)
	require.NoError(t, err)
	return file
}

// seedFile 直接写入一个文件行, 配额同时计入, 对象写入存储
func (e *testEnv) seedFile(t *testing.T, projectID, accountID string, status models.FileStatus, mime string, size uint64) *models.File {
	t.Helper()
	ctx := context.Background()
	file := &models.File{
		ID:            uuid.NewString(),
		ProjectID:     projectID,
		Name:          "asset",
		OriginalName:  "asset.bin",
		MimeType:      mime,
		FileSizeBytes: size,
		Status:        status,
	}
	_, err := e.ledger.Reserve(ctx, nil, accountID, size)
	require.NoError(t, err)
	require.NoError(t, e.files.Create(ctx, file))
	e.gateway.put(OriginalKey(accountID, file), int64(size))
	return file
}
