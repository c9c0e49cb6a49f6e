package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"card-manager/core/card"
	"card-manager/core/reconcile"
	"card-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps one JSON object per workspace in a bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates an ObjectStore writing under prefix in bucket.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object name holding the snapshot of workspace.
func (s *ObjectStore) Key(workspace string) string {
	return path.Join(s.prefix, workspace+".json")
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// Load implements Store.
func (s *ObjectStore) Load(ctx context.Context, workspace string) ([]reconcile.Record, error) {
	if err := ValidateWorkspace(workspace); err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, s.Key(workspace), minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot %s: %w", workspace, err)
	}
	defer obj.Close()

	// minio reports a missing key lazily, on the first read.
	raw, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", workspace, err)
	}
	return Decode(bytes.NewReader(raw))
}

// Save implements Store.
func (s *ObjectStore) Save(ctx context.Context, workspace string, cards []card.Card) error {
	if err := ValidateWorkspace(workspace); err != nil {
		return err
	}
	doc, err := Encode(cards)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.Key(workspace), bytes.NewReader(doc), int64(len(doc)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put snapshot %s: %w", workspace, err)
	}
	return nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Remove implements Store.
func (s *ObjectStore) Remove(ctx context.Context, workspace string) error {
	if err := ValidateWorkspace(workspace); err != nil {
		return err
	}
	err := s.client.RemoveObject(ctx, s.bucket, s.Key(workspace), minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("failed to remove snapshot %s: %w", workspace, err)
	}
	return nil
}

// Workspaces implements Store.
func (s *ObjectStore) Workspaces(ctx context.Context) ([]string, error) {
	prefix := s.Key("x")
	prefix = prefix[:len(prefix)-len("x.json")]

	out := []string{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		name, ok := strings.CutSuffix(strings.TrimPrefix(obj.Key, prefix), ".json")
		if !ok || ValidateWorkspace(name) != nil {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
