// Package journal implements the capture-and-create flows on top of the
// memory-store SDK and the auth/storage backend: upload media blobs first,
// then write the entry that references their public URLs. A partially failed
// multi-image create triggers compensating deletion of the blobs already
// uploaded, via a background sharded queue.
package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/akshat1423/memoire/authstore"
	"github.com/akshat1423/memoire/client"
	"github.com/akshat1423/memoire/internal/shardqueue"
	"github.com/akshat1423/memoire/internal/types"
)

// Service composes the memory-store client, the auth/storage backend, and
// the cleanup executor into the entry-creation flows the capture screens use.
type Service struct {
	entries *client.Client
	store   *authstore.Client
	cleanup *shardqueue.ShardExecutor
}

// NewService wires a journal service. cfg tunes the cleanup executor; pass
// the zero Config to accept its defaults.
func NewService(entries *client.Client, store *authstore.Client, cfg shardqueue.Config) *Service {
	if entries == nil {
		panic("entries client cannot be nil")
	}
	if store == nil {
		panic("auth store client cannot be nil")
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(err error) {
			log.Warn().Err(err).Msg("journal: cleanup job failed")
		}
	}
	return &Service{
		entries: entries,
		store:   store,
		cleanup: shardqueue.NewShardExecutor(cfg),
	}
}

// Close drains the cleanup queue and stops its workers.
func (s *Service) Close() error {
	return s.cleanup.Close()
}

// AwaitCleanup blocks until every cleanup job already enqueued for userID has
// run. Intended for tests and orderly shutdown.
func (s *Service) AwaitCleanup(ctx context.Context, userID string) error {
	return s.cleanup.Barrier(ctx, userID)
}

// userID resolves the signed-in account id, degrading to the anonymous
// placeholder the same way the entries client does.
func (s *Service) userID(ctx context.Context) string {
	id, err := s.store.SessionUserID(ctx)
	if err != nil || id == "" {
		return client.AnonymousUserID
	}
	return id
}

// CreateText writes a text entry titled title with body as its content.
func (s *Service) CreateText(ctx context.Context, title, body string, meta client.Metadata) (*client.Entry, error) {
	m := cloneMeta(meta)
	if title != "" {
		m[types.MetaTitle] = title
	}
	return s.entries.CreateEntry(ctx, client.EntryTypeText, body, m)
}

// CreateImage uploads one base64 image data URL and writes an image entry
// referencing the stored blob.
func (s *Service) CreateImage(ctx context.Context, dataURL, caption string, meta client.Metadata) (*client.Entry, error) {
	uid := s.userID(ctx)
	publicURL, err := s.store.UploadImage(ctx, dataURL, uid)
	if err != nil {
		return nil, fmt.Errorf("image upload: %w", err)
	}

	m := cloneMeta(meta)
	if caption != "" {
		m[types.MetaCaption] = caption
	}
	entry, err := s.entries.CreateEntry(ctx, client.EntryTypeImage, publicURL, m)
	if err != nil {
		s.enqueueDelete(uid, publicURL)
		return nil, err
	}
	return entry, nil
}

// CreateAudio uploads one base64 audio data URL and writes an audio entry
// with its duration (seconds) and transcript.
func (s *Service) CreateAudio(ctx context.Context, dataURL string, duration int, transcript string, meta client.Metadata) (*client.Entry, error) {
	uid := s.userID(ctx)
	publicURL, err := s.store.UploadAudio(ctx, dataURL, uid)
	if err != nil {
		return nil, fmt.Errorf("audio upload: %w", err)
	}

	m := cloneMeta(meta)
	m[types.MetaDuration] = duration
	if transcript != "" {
		m[types.MetaTranscript] = transcript
	}
	entry, err := s.entries.CreateEntry(ctx, client.EntryTypeAudio, publicURL, m)
	if err != nil {
		s.enqueueDelete(uid, publicURL)
		return nil, err
	}
	return entry, nil
}

// CreateStoredImages uploads the staged images in order and writes one
// stored-images entry whose payload maps image1..imageN to the uploaded
// public URLs, with image_count set to N.
//
// Uploads run sequentially; the first failure aborts the remaining uploads
// and the entry create, and the blobs already stored are handed to the
// cleanup queue for best-effort deletion.
func (s *Service) CreateStoredImages(ctx context.Context, dataURLs []string, caption string, meta client.Metadata) (*client.Entry, error) {
	if len(dataURLs) == 0 {
		return nil, fmt.Errorf("no images to upload")
	}
	uid := s.userID(ctx)

	uploaded := make([]string, 0, len(dataURLs))
	for i, dataURL := range dataURLs {
		publicURL, err := s.store.UploadImage(ctx, dataURL, uid)
		if err != nil {
			s.enqueueDeletes(uid, uploaded)
			return nil, fmt.Errorf("image %d of %d upload: %w", i+1, len(dataURLs), err)
		}
		uploaded = append(uploaded, publicURL)
	}

	images := make(map[string]string, len(uploaded))
	for i, u := range uploaded {
		images[fmt.Sprintf("image%d", i+1)] = u
	}
	payload, err := json.Marshal(images)
	if err != nil {
		s.enqueueDeletes(uid, uploaded)
		return nil, err
	}

	m := cloneMeta(meta)
	if caption != "" {
		m[types.MetaCaption] = caption
	}
	m[types.MetaImageCount] = len(uploaded)

	entry, err := s.entries.CreateEntry(ctx, client.EntryTypeStoredImages, string(payload), m)
	if err != nil {
		s.enqueueDeletes(uid, uploaded)
		return nil, err
	}
	return entry, nil
}

// enqueueDelete schedules best-effort removal of an orphaned blob. The job
// carries a fresh context so a dying request cannot strand the orphan.
func (s *Service) enqueueDelete(userID, publicURL string) {
	job := shardqueue.JobFunc(func(ctx context.Context) error {
		return s.store.DeleteUpload(ctx, publicURL)
	})
	if err := s.cleanup.Submit(context.Background(), userID, job); err != nil {
		log.Warn().Err(err).Str("url", publicURL).Msg("journal: could not enqueue orphan cleanup")
		return
	}
	cleanupEnqueuedTotal.Inc()
}

func (s *Service) enqueueDeletes(userID string, publicURLs []string) {
	for _, u := range publicURLs {
		s.enqueueDelete(userID, u)
	}
}

func cloneMeta(meta client.Metadata) client.Metadata {
	if meta == nil {
		return client.Metadata{}
	}
	return meta.Clone()
}
