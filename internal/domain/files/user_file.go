package files

import "time"

type UserFile struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"column:user_id;not null;index" json:"user_id"`
	FileName    string    `gorm:"column:file_name;not null" json:"file_name"`
	FileURL     string    `gorm:"column:file_url;not null" json:"file_url"`
	StorageKey  string    `gorm:"column:storage_key;not null;uniqueIndex" json:"storage_key"`
	ContentType string    `gorm:"column:content_type" json:"content_type"`
	SizeBytes   int64     `gorm:"column:size_bytes" json:"size_bytes"`
	UploadedAt  time.Time `gorm:"column:uploaded_at;not null;autoCreateTime" json:"uploaded_at"`
}

func (UserFile) TableName() string { return "user_files" }
