package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

// MarkdownContentType is attached to every published meeting document
const MarkdownContentType = "text/markdown; charset=utf-8"

// MinIOClient wraps MinIO operations
type MinIOClient struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	prefix := cfg.DocumentPrefix
	if prefix == "" {
		prefix = "meetings"
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
		prefix: prefix,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket when it does not exist yet
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// DocumentKey returns the object key for a meeting document
func DocumentKey(prefix, meetingID string) string {
	if prefix == "" {
		prefix = "meetings"
	}
	return path.Join(prefix, meetingID+".md")
}

// PutDocument writes (or overwrites) the markdown document of a meeting and
// returns its object key
func (m *MinIOClient) PutDocument(ctx context.Context, meetingID string, body []byte) (string, error) {
	key := DocumentKey(m.prefix, meetingID)
	if err := m.UploadFile(ctx, key, bytes.NewReader(body), int64(len(body)), MarkdownContentType); err != nil {
		return "", err
	}
	return key, nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

// ListDocuments lists the published document keys
func (m *MinIOClient) ListDocuments(ctx context.Context) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    m.prefix + "/",
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}

	return files, nil
}
