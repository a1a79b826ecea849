package service

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/util"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider stores uploaded attachments under a generated name.
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// LocalStorageProvider writes files below a directory served at /uploads.
type LocalStorageProvider struct {
	Dir string
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return "", err
	}

	out, err := os.Create(filepath.Join(p.Dir, filepath.Base(filename)))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	err := os.Remove(filepath.Join(p.Dir, filepath.Base(filename)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

type MinioStorageProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Bucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Bucket + "/" + filename
}

type OSSStorageProvider struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := p.Bucket.PutObject(filename, reader, oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *OSSStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Bucket.DeleteObject(filename, oss.WithContext(ctx))
}

func (p *OSSStorageProvider) GetURL(filename string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Bucket.BucketName, p.Endpoint, filename)
}

// NewStorageProvider picks the backend named by storage.type; unknown types use local disk.
func NewStorageProvider(cfg *config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case util.StorageMinio:
		return NewMinioStorageProvider(cfg)
	case util.StorageOSS:
		return NewOSSStorageProvider(cfg)
	default:
		return &LocalStorageProvider{Dir: cfg.LocalPath}, nil
	}
}
