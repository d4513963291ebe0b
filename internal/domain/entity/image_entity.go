package entity

import (
	"time"

	"github.com/google/uuid"
)

// Image is a stored upload that references its owner by uuid value only.
type Image struct {
	ID          int64
	UserUUID    uuid.UUID
	Data        []byte
	ContentType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
