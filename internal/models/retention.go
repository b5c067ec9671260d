package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogRetentionPolicy controls how long processing logs of a given level are
// kept before the backend purges them.
type LogRetentionPolicy struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	LogLevel      string    `gorm:"type:varchar(20);not null" json:"log_level"`
	RetentionDays int       `gorm:"not null" json:"retention_days"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (LogRetentionPolicy) TableName() string {
	return "log_retention_policies"
}

// BeforeCreate hook
func (p *LogRetentionPolicy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ArchivalRule moves studies matching its criteria to a storage destination
// after a delay. Criteria reuse the rule engine's match criterion shape.
type ArchivalRule struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string            `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	MatchCriteria MatchCriteriaList `gorm:"type:jsonb;not null;default:'[]'" json:"match_criteria"`
	DestinationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"destination_id"`
	DelayDays     int               `gorm:"not null;default:0" json:"delay_days"`
	IsActive      bool              `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (ArchivalRule) TableName() string {
	return "archival_rules"
}

// BeforeCreate hook
func (a *ArchivalRule) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// LogRetentionPolicyCreatePayload is the wire body for creating a policy.
type LogRetentionPolicyCreatePayload struct {
	Name          string `json:"name"`
	LogLevel      string `json:"log_level"`
	RetentionDays int    `json:"retention_days"`
}

// LogRetentionPolicyUpdatePayload is the wire body for updating a policy.
type LogRetentionPolicyUpdatePayload struct {
	Name          *string `json:"name,omitempty"`
	LogLevel      *string `json:"log_level,omitempty"`
	RetentionDays *int    `json:"retention_days,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// ArchivalRuleCreatePayload is the wire body for creating an archival rule.
type ArchivalRuleCreatePayload struct {
	Name          string           `json:"name"`
	MatchCriteria []MatchCriterion `json:"match_criteria"`
	DestinationID uuid.UUID        `json:"destination_id"`
	DelayDays     int              `json:"delay_days"`
}

// ArchivalRuleUpdatePayload is the wire body for updating an archival rule.
type ArchivalRuleUpdatePayload struct {
	Name          *string           `json:"name,omitempty"`
	MatchCriteria *[]MatchCriterion `json:"match_criteria,omitempty"`
	DestinationID *uuid.UUID        `json:"destination_id,omitempty"`
	DelayDays     *int              `json:"delay_days,omitempty"`
	IsActive      *bool             `json:"is_active,omitempty"`
}
