package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/thetarnished/academy-backend/internal/logger"
)

const signedURLTTL = time.Hour

type VideoService interface {
	// Upload stores the stream and returns its storage key.
	Upload(ctx context.Context, fileName, contentType string, file io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	// ResolveURL never fails: when signing is unavailable it degrades to the
	// public bucket URL.
	ResolveURL(key string) string
}

type videoService struct {
	log    *logger.Logger
	bucket BucketService
}

func NewVideoService(log *logger.Logger, bucket BucketService) VideoService {
	return &videoService{
		log:    log.With("service", "VideoService"),
		bucket: bucket,
	}
}

func (vs *videoService) Upload(ctx context.Context, fileName, contentType string, file io.Reader) (string, error) {
	key := buildVideoKey(fileName)
	if err := vs.bucket.UploadFile(ctx, key, contentType, file); err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}
	vs.log.Info("video uploaded", "key", key)
	return key, nil
}

func (vs *videoService) Delete(ctx context.Context, key string) error {
	return vs.bucket.DeleteFile(ctx, key)
}

func (vs *videoService) ResolveURL(key string) string {
	url, err := vs.bucket.SignedURL(key, signedURLTTL)
	if err != nil {
		vs.log.Warn("signed url unavailable, serving public url", "key", key, "error", err)
		return vs.bucket.GetPublicURL(key)
	}
	return url
}

// buildVideoKey prefixes a timestamp so repeated uploads of the same file
// name never collide.
func buildVideoKey(fileName string) string {
	base := path.Base(fileName)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("videos/%d-%s", time.Now().Unix(), base)
}
