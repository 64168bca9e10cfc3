package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/labelchain/LabelChain/config"
)

// Service 样本文件对象存储，上传后返回可长期访问的URL
type Service struct {
	client *minio.Client
	cfg    *config.MinioConf
}

func New(cfg *config.MinioConf) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client failed")
	}
	return &Service{client: client, cfg: cfg}, nil
}

// EnsureBucket 桶不存在就建
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket failed")
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrap(err, "create bucket failed")
		}
	}
	return nil
}

// PutSampleFile 按项目归档上传样本，对象名带uuid避免重名覆盖
func (s *Service) PutSampleFile(ctx context.Context, projectID, filename string,
	reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("projects/%s/%s%s", projectID, uuid.New().String(), path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "upload sample file failed")
	}
	return s.publicURL(objectName), nil
}

func (s *Service) publicURL(objectName string) string {
	protocol := "http"
	if s.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.cfg.Endpoint, s.cfg.Bucket, objectName)
}
