package files

import "time"

// PendingBlob is written before a blob is uploaded and removed in the same
// transaction that records the UserFile. A row that outlives the grace period
// points at a blob with no metadata.
type PendingBlob struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"column:user_id;not null" json:"user_id"`
	StorageKey string    `gorm:"column:storage_key;not null;uniqueIndex" json:"storage_key"`
	Attempts   int       `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError  string    `gorm:"column:last_error" json:"last_error,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (PendingBlob) TableName() string { return "pending_blobs" }
