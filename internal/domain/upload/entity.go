// internal/domain/upload/entity.go
package upload

import (
	"time"

	"gorm.io/gorm"
)

// UploadedFile is the stored record of a menu image upload
type UploadedFile struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FileName     string         `gorm:"uniqueIndex;not null;size:255" json:"file_name"`
	OriginalName string         `gorm:"not null;size:255" json:"original_name"`
	FilePath     string         `gorm:"not null;size:500" json:"-"`
	URL          string         `gorm:"not null;size:500" json:"url"`
	Size         int64          `gorm:"not null" json:"size"`
	ContentType  string         `gorm:"size:100" json:"content_type"`
	UploadedBy   uint           `gorm:"index" json:"uploaded_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (UploadedFile) TableName() string {
	return "uploaded_files"
}
