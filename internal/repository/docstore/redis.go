package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/legalens/docuverify/internal/domain"
)

// Compile-time check: Redis implements Store.
var _ Store = (*Redis)(nil)

// RedisConfig holds connection parameters for the redis driver.
type RedisConfig struct {
	Addrs     []string
	Password  string
	KeyPrefix string
	TTL       time.Duration // 0 = no expiry
}

// Redis stores documents as JSON records in Redis via rueidis.
type Redis struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

// docRecord is the wire form of a stored document. Content is base64 via
// encoding/json's []byte handling.
type docRecord struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Content     []byte    `json:"content"`
}

// NewRedis creates a Redis-backed document store.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "docuverify:"
	}

	return &Redis{client: client, prefix: prefix, ttl: cfg.TTL}, nil
}

// Put stores a document record, with a TTL when configured.
func (r *Redis) Put(ctx context.Context, doc domain.StoredDocument) error {
	data, err := json.Marshal(docRecord{
		ID:          doc.ID,
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Size:        doc.Size,
		UploadedAt:  doc.UploadedAt,
		Content:     doc.Content,
	})
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", doc.ID, err)
	}

	return r.set(ctx, r.docKey(doc.ID), data)
}

// Get returns the document for id.
func (r *Redis) Get(ctx context.Context, id string) (domain.StoredDocument, error) {
	data, err := r.get(ctx, r.docKey(id))
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return domain.StoredDocument{}, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
		}
		return domain.StoredDocument{}, fmt.Errorf("get document %q: %w", id, err)
	}

	var rec docRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.StoredDocument{}, fmt.Errorf("unmarshal document %q: %w", id, err)
	}

	return domain.StoredDocument{
		ID:          rec.ID,
		Filename:    rec.Filename,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		UploadedAt:  rec.UploadedAt,
		Content:     rec.Content,
	}, nil
}

// PutAnalysis caches an analysis result payload for a document.
func (r *Redis) PutAnalysis(ctx context.Context, id string, result json.RawMessage) error {
	return r.set(ctx, r.analysisKey(id), result)
}

// GetAnalysis returns the cached analysis for id.
func (r *Redis) GetAnalysis(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := r.get(ctx, r.analysisKey(id))
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, fmt.Errorf("analysis for document %q: %w", id, domain.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("get analysis %q: %w", id, err)
	}
	return data, nil
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (r *Redis) Close() {
	r.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (r *Redis) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for store: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (r *Redis) docKey(id string) string      { return r.prefix + "doc:" + id }
func (r *Redis) analysisKey(id string) string { return r.prefix + "analysis:" + id }

func (r *Redis) set(ctx context.Context, key string, value []byte) error {
	var cmd rueidis.Completed
	if r.ttl > 0 {
		cmd = r.client.B().Set().Key(key).Value(string(value)).Ex(r.ttl).Build()
	} else {
		cmd = r.client.B().Set().Key(key).Value(string(value)).Build()
	}
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) get(ctx context.Context, key string) ([]byte, error) {
	cmd := r.client.B().Get().Key(key).Build()
	return r.client.Do(ctx, cmd).AsBytes()
}
