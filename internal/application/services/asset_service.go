package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/media"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/storage"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// ErrNoStorage is returned by asset operations that cannot run without
// a configured storage backend.
var ErrNoStorage = errors.New("storage is not configured")

// UploadResult describes a completed asset upload.
type UploadResult struct {
	Object    string `json:"object"`
	PublicURL string `json:"publicUrl"`
	Bytes     int    `json:"bytes"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// ProxiedAsset is the body and content type of a proxied download.
type ProxiedAsset struct {
	Data        []byte
	ContentType string
}

// AssetService handles image uploads, the trusted-by logo collection
// and proxied downloads from the storage backend.
type AssetService struct {
	storage *storage.Client
	logger  *logging.ChanneledLogger
}

func NewAssetService(store *storage.Client, logger *logging.ChanneledLogger) *AssetService {
	return &AssetService{storage: store, logger: logger}
}

// UploadImage validates and stores an image. A non-empty target pins
// the object name so re-uploads overwrite; otherwise the sanitized
// filename gets a unique prefix.
func (s *AssetService) UploadImage(ctx context.Context, filename, mimeType string, data []byte, target string) (*UploadResult, error) {
	if !s.storage.Configured() {
		return nil, ErrNoStorage
	}
	if err := media.CheckUpload(mimeType, int64(len(data)), config.MaxUploadBytes); err != nil {
		return nil, err
	}
	probe, err := media.ProbeImage(mimeType, data)
	if err != nil {
		return nil, err
	}

	object := target
	if object == "" {
		object = media.UniqueName(media.SanitizeFilename(filename))
	} else {
		object = media.SanitizeFilename(object)
	}

	if err := s.storage.Upload(ctx, config.ImagesBucket, object, mimeType, data); err != nil {
		return nil, fmt.Errorf("upload %s: %w", object, err)
	}

	s.logger.Storage().Info("Image uploaded", "object", object, "bytes", len(data))
	return &UploadResult{
		Object:    object,
		PublicURL: s.storage.PublicURL(config.ImagesBucket, object),
		Bytes:     len(data),
		Width:     probe.Width,
		Height:    probe.Height,
	}, nil
}

// TrustedByLogo is one entry of the trusted-by strip.
type TrustedByLogo struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ListTrustedBy returns the logo collection from storage, falling back
// to the local directory shipped with the site when the backend is
// unreachable.
func (s *AssetService) ListTrustedBy(ctx context.Context) ([]TrustedByLogo, error) {
	if s.storage.Configured() {
		objects, err := s.storage.List(ctx, config.TrustedByBucket, "", 100)
		if err == nil {
			logos := make([]TrustedByLogo, 0, len(objects))
			for _, obj := range objects {
				if obj.Name == "" || strings.HasPrefix(obj.Name, ".") {
					continue
				}
				logos = append(logos, TrustedByLogo{
					Key: obj.Name,
					URL: s.storage.PublicURL(config.TrustedByBucket, obj.Name),
				})
			}
			return logos, nil
		}
		s.logger.Storage().Warn("Trusted-by list failed, scanning local directory", "error", err.Error())
	}
	return s.listTrustedByLocal()
}

func (s *AssetService) listTrustedByLocal() ([]TrustedByLogo, error) {
	entries, err := os.ReadDir(config.TrustedByLocalDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", config.TrustedByLocalDir, err)
	}
	logos := make([]TrustedByLogo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".svg", ".webp":
			logos = append(logos, TrustedByLogo{
				Key: entry.Name(),
				URL: "/" + filepath.ToSlash(filepath.Join(config.TrustedByLocalDir, entry.Name())),
			})
		}
	}
	return logos, nil
}

// UploadTrustedBy stores a logo in the trusted-by collection. Unlike
// the images endpoint there is no MIME allow-list; only the size cap
// applies.
func (s *AssetService) UploadTrustedBy(ctx context.Context, filename, mimeType string, data []byte) (*UploadResult, error) {
	if !s.storage.Configured() {
		return nil, ErrNoStorage
	}
	if err := media.CheckSize(int64(len(data)), config.MaxUploadBytes); err != nil {
		return nil, err
	}
	object := media.UniqueName(media.SanitizeFilename(filename))
	if err := s.storage.Upload(ctx, config.TrustedByBucket, object, mimeType, data); err != nil {
		return nil, fmt.Errorf("upload %s: %w", object, err)
	}
	s.logger.Storage().Info("Trusted-by logo uploaded", "object", object)
	return &UploadResult{
		Object:    object,
		PublicURL: s.storage.PublicURL(config.TrustedByBucket, object),
		Bytes:     len(data),
	}, nil
}

// DeleteTrustedBy removes a logo by object key.
func (s *AssetService) DeleteTrustedBy(ctx context.Context, key string) error {
	if !s.storage.Configured() {
		return ErrNoStorage
	}
	if err := s.storage.Delete(ctx, config.TrustedByBucket, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.logger.Storage().Info("Trusted-by logo deleted", "object", key)
	return nil
}

// ProxyImage fetches an object from the images bucket, trying the
// public endpoint first and the authenticated one when the bucket is
// private.
func (s *AssetService) ProxyImage(ctx context.Context, object string) (*ProxiedAsset, error) {
	if !s.storage.HasBaseURL() {
		return nil, ErrNoStorage
	}
	data, contentType, err := s.storage.DownloadPublic(ctx, config.ImagesBucket, object)
	if err != nil {
		data, contentType, err = s.storage.DownloadAuthed(ctx, config.ImagesBucket, object)
	}
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "image/png"
	}
	return &ProxiedAsset{Data: data, ContentType: contentType}, nil
}
