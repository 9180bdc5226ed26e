package entities

import (
	"time"

	"github.com/google/uuid"
)

type OrderFile struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	OrderID     uuid.UUID     `json:"order_id" db:"order_id"`
	UploadedBy  uuid.NullUUID `json:"uploaded_by" db:"uploaded_by"` // NULL, если загрузивший удален
	FileName    string        `json:"file_name" db:"file_name"`
	FileSize    int64         `json:"file_size" db:"file_size"`
	MimeType    string        `json:"mime_type" db:"mime_type"`
	Category    string        `json:"category" db:"category"`
	StoragePath string        `json:"storage_path" db:"storage_path"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
