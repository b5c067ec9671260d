package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StorageDestination is a named storage/forwarding target that rules and
// archival policies route matched studies to. Config is backend-defined per
// Type and opaque to the admin layer.
type StorageDestination struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name   string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Type   DestinationType `gorm:"type:varchar(50);not null" json:"type"`
	Config JSONMap         `gorm:"type:jsonb;not null;default:'{}'" json:"config"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (StorageDestination) TableName() string {
	return "storage_destinations"
}

// BeforeCreate hook
func (d *StorageDestination) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// StorageDestinationCreatePayload is the wire body for creating a destination.
type StorageDestinationCreatePayload struct {
	Name   string          `json:"name"`
	Type   DestinationType `json:"type"`
	Config JSONMap         `json:"config"`
}

// StorageDestinationUpdatePayload is the wire body for updating a destination.
type StorageDestinationUpdatePayload struct {
	Name     *string          `json:"name,omitempty"`
	Type     *DestinationType `json:"type,omitempty"`
	Config   *JSONMap         `json:"config,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}
