package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SourceType represents the protocol a data source speaks.
type SourceType string

const (
	SourceDICOMWeb         SourceType = "dicomweb"
	SourceDIMSE            SourceType = "dimse"
	SourceGoogleHealthcare SourceType = "google_healthcare"
)

// DataSource is a queryable PACS/archive the platform ingests from. Rules
// reference sources by Name (applicable_sources), so names are unique.
type DataSource struct {
	ID   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Type SourceType `gorm:"type:varchar(50);not null" json:"type"`

	// Endpoint is a hostname for DIMSE sources and a base URL host for
	// DICOMweb/Google Healthcare sources.
	Endpoint string `gorm:"type:varchar(500);not null" json:"endpoint"`
	Port     int    `gorm:"not null" json:"port"`

	// DIMSE association identity.
	CallingAETitle string `gorm:"type:varchar(50)" json:"calling_ae_title,omitempty"`
	RemoteAETitle  string `gorm:"type:varchar(50)" json:"remote_ae_title,omitempty"`

	Username     string `gorm:"type:varchar(255)" json:"username,omitempty"`
	PasswordHash string `gorm:"type:text" json:"-"` // Encrypted password
	APIKey       string `gorm:"type:text" json:"-"` // Encrypted bearer token / API key

	// AuthConfig carries backend-specific auth material (e.g. Google
	// Healthcare project/location/dataset/store) as an opaque object.
	AuthConfig JSONMap `gorm:"type:jsonb" json:"auth_config,omitempty"`

	IsActive  bool `gorm:"default:true" json:"is_active"`
	IsDefault bool `gorm:"default:false" json:"is_default"`

	// Connection status tracking
	LastConnectionTest   time.Time `gorm:"index" json:"last_connection_test,omitempty"`
	LastConnectionStatus bool      `json:"last_connection_status,omitempty"`
	LastError            string    `gorm:"type:text" json:"last_error,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (DataSource) TableName() string {
	return "data_sources"
}

// BeforeCreate hook
func (s *DataSource) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ConnectionStatus represents the outcome of a source connection test.
type ConnectionStatus struct {
	IsConnected  bool      `json:"is_connected"`
	LastChecked  time.Time `json:"last_checked"`
	ResponseTime int64     `json:"response_time_ms"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Capabilities []string  `json:"capabilities,omitempty"`
}

// ConnectionTestRequest tests connectivity without persisting a source.
type ConnectionTestRequest struct {
	Type           SourceType `json:"type"`
	Endpoint       string     `json:"endpoint"`
	Port           int        `json:"port"`
	CallingAETitle string     `json:"calling_ae_title,omitempty"`
	RemoteAETitle  string     `json:"remote_ae_title,omitempty"`
	Username       string     `json:"username,omitempty"`
	Password       string     `json:"password,omitempty"`
	APIKey         string     `json:"api_key,omitempty"`
}

// DataSourceCreatePayload is the wire body for creating a source.
type DataSourceCreatePayload struct {
	Name           string     `json:"name"`
	Type           SourceType `json:"type"`
	Endpoint       string     `json:"endpoint"`
	Port           int        `json:"port"`
	CallingAETitle string     `json:"calling_ae_title,omitempty"`
	RemoteAETitle  string     `json:"remote_ae_title,omitempty"`
	Username       string     `json:"username,omitempty"`
	Password       string     `json:"password,omitempty"`
	APIKey         string     `json:"api_key,omitempty"`
	AuthConfig     JSONMap    `json:"auth_config,omitempty"`
	IsDefault      bool       `json:"is_default"`
}

// DataSourceUpdatePayload is the wire body for updating a source.
type DataSourceUpdatePayload struct {
	Name           *string     `json:"name,omitempty"`
	Type           *SourceType `json:"type,omitempty"`
	Endpoint       *string     `json:"endpoint,omitempty"`
	Port           *int        `json:"port,omitempty"`
	CallingAETitle *string     `json:"calling_ae_title,omitempty"`
	RemoteAETitle  *string     `json:"remote_ae_title,omitempty"`
	Username       *string     `json:"username,omitempty"`
	Password       *string     `json:"password,omitempty"`
	APIKey         *string     `json:"api_key,omitempty"`
	AuthConfig     *JSONMap    `json:"auth_config,omitempty"`
	IsActive       *bool       `json:"is_active,omitempty"`
	IsDefault      *bool       `json:"is_default,omitempty"`
}
