package service

import (
	"context"
	"fmt"
	"hiphop_roadmap_backend/internal/config"
	"hiphop_roadmap_backend/internal/util"
	"hiphop_roadmap_backend/pkg/logger"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 保存技能视频等媒体文件，object 为相对路径，如 videos/toprock.mp4
type StorageProvider interface {
	Put(ctx context.Context, object, localPath, contentType string) error
	Remove(ctx context.Context, object string) error
	// BaseURL 对象公开地址的前缀，不含结尾斜杠
	BaseURL() string
}

// LocalStorageProvider 文件写入 local_path，通过 /uploads 静态路由访问
type LocalStorageProvider struct {
	Root      string
	PublicURL string
}

func (p *LocalStorageProvider) Put(_ context.Context, object, localPath, _ string) error {
	dst := filepath.Join(p.Root, filepath.FromSlash(object))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()

	return copyToFile(dst, src)
}

func (p *LocalStorageProvider) Remove(_ context.Context, object string) error {
	err := os.Remove(filepath.Join(p.Root, filepath.FromSlash(object)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *LocalStorageProvider) BaseURL() string {
	if p.PublicURL == "" {
		return "/uploads"
	}
	return strings.TrimSuffix(p.PublicURL, "/")
}

type MinioStorageProvider struct {
	Client    *minio.Client
	Bucket    string
	PublicURL string
}

// NewMinioStorageProvider 连接 MinIO，bucket 不存在时创建
func NewMinioStorageProvider(ctx context.Context, cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinioBucket, err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" || publicURL == "/uploads" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.MinioEndpoint
	}
	return &MinioStorageProvider{Client: client, Bucket: cfg.MinioBucket, PublicURL: publicURL}, nil
}

func (p *MinioStorageProvider) Put(ctx context.Context, object, localPath, contentType string) error {
	_, err := p.Client.FPutObject(ctx, p.Bucket, object, localPath, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (p *MinioStorageProvider) Remove(ctx context.Context, object string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, object, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) BaseURL() string {
	return strings.TrimSuffix(p.PublicURL, "/") + "/" + p.Bucket
}

type StorageService struct {
	Provider StorageProvider
	// TempDir 上传视频在探测和转存前的落盘目录
	TempDir string
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider = &LocalStorageProvider{Root: cfg.Storage.LocalPath, PublicURL: cfg.Storage.PublicURL}

	if cfg.Storage.Type == util.StorageMinio {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if p, err := NewMinioStorageProvider(ctx, &cfg.Storage); err != nil {
			logger.Log.Warn("MinIO unavailable, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	}

	tempDir := os.TempDir()
	if cfg.Storage.LocalPath != "" {
		tempDir = filepath.Join(cfg.Storage.LocalPath, "temp")
	}
	return &StorageService{Provider: provider, TempDir: tempDir}
}

// Upload 保存对象并返回公开地址
func (s *StorageService) Upload(ctx context.Context, object, localPath, contentType string) (string, error) {
	if err := s.Provider.Put(ctx, object, localPath, contentType); err != nil {
		return "", fmt.Errorf("store %s: %w", object, err)
	}
	return s.URL(object), nil
}

func (s *StorageService) URL(object string) string {
	return s.Provider.BaseURL() + "/" + object
}

// RemoveByURL 删除由本服务生成的地址对应的对象；外部链接忽略
func (s *StorageService) RemoveByURL(ctx context.Context, url string) error {
	prefix := s.Provider.BaseURL() + "/"
	if url == "" || !strings.HasPrefix(url, prefix) {
		return nil
	}
	return s.Provider.Remove(ctx, strings.TrimPrefix(url, prefix))
}

func copyToFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
