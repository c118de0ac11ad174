// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/foodorder-backend/internal/config"
	"gorm.io/gorm"
)

// Service stores menu images on local disk and records them in the database
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UploadImage validates and stores one image, returning its record
func (s *Service) UploadImage(header *multipart.FileHeader, uploadedBy uint) (*UploadedFile, error) {
	if header.Size > s.config.Upload.MaxSize {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", s.config.Upload.MaxSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !s.isAllowedExtension(ext) {
		return nil, fmt.Errorf("file type %q is not allowed", ext)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.config.Upload.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.config.Upload.LocalPath, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	record := UploadedFile{
		FileName:     fileName,
		OriginalName: header.Filename,
		FilePath:     filePath,
		URL:          fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.Upload.PublicBaseURL, "/"), fileName),
		Size:         written,
		ContentType:  header.Header.Get("Content-Type"),
		UploadedBy:   uploadedBy,
	}
	if err := s.db.Create(&record).Error; err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return &record, nil
}

// DeleteImage removes an uploaded image record and its file
func (s *Service) DeleteImage(id uint) error {
	var record UploadedFile
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return fmt.Errorf("upload not found")
	}

	if err := s.db.Delete(&record).Error; err != nil {
		return fmt.Errorf("failed to delete upload record: %w", err)
	}

	// The record is authoritative; a missing file on disk is not an error.
	if err := os.Remove(record.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ListImages lists uploaded images, newest first
func (s *Service) ListImages() ([]UploadedFile, error) {
	var records []UploadedFile
	if err := s.db.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return records, nil
}

func (s *Service) isAllowedExtension(ext string) bool {
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
