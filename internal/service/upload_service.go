package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"pasar-warga/internal/config"
)

var ErrNotAnImage = errors.New("only image uploads are allowed")

type UploadService interface {
	UploadImage(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
}

type uploadService struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewUploadService(minioClient *minio.Client, cfg *config.Config) UploadService {
	return &uploadService{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// UploadImage stores a listing photo and returns the public URL the
// client then submits in the listing's images field.
func (s *uploadService) UploadImage(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return "", ErrNotAnImage
	}

	objectPath := fmt.Sprintf("listings/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectPath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
		UserMetadata: map[string]string{
			"uploaded-by": userID.String(),
			"file-name":   fileName,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return s.publicURL(objectPath), nil
}

func (s *uploadService) publicURL(objectPath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectPath)
}
