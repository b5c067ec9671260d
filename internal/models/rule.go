package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperatorKind enumerates the comparison operators a criterion may use.
type OperatorKind string

const (
	OpEq         OperatorKind = "eq"
	OpNe         OperatorKind = "ne"
	OpGt         OperatorKind = "gt"
	OpLt         OperatorKind = "lt"
	OpGe         OperatorKind = "ge"
	OpLe         OperatorKind = "le"
	OpContains   OperatorKind = "contains"
	OpStartsWith OperatorKind = "startswith"
	OpEndsWith   OperatorKind = "endswith"
	OpExists     OperatorKind = "exists"
	OpNotExists  OperatorKind = "notexists"

	// List operators. Values are comma-separated.
	OpIn    OperatorKind = "in"
	OpNotIn OperatorKind = "not_in"

	// IP operators, valid only for IP-typed association parameters.
	OpIPStartsWith OperatorKind = "ip_startswith"
	OpIPInSubnet   OperatorKind = "ip_in_subnet"
)

// IsNoValue reports whether the operator takes no comparison value.
func (op OperatorKind) IsNoValue() bool {
	return op == OpExists || op == OpNotExists
}

// MatchOperators are the operators permitted on DICOM tag match criteria.
var MatchOperators = []OperatorKind{
	OpEq, OpNe, OpGt, OpLt, OpGe, OpLe,
	OpContains, OpStartsWith, OpEndsWith,
	OpExists, OpNotExists,
	OpIn, OpNotIn,
}

// AssociationParameter identifies a connection-level attribute of the
// incoming association that a rule can match on.
type AssociationParameter string

const (
	ParamCallingAETitle  AssociationParameter = "CALLING_AE_TITLE"
	ParamCalledAETitle   AssociationParameter = "CALLED_AE_TITLE"
	ParamSourceIP        AssociationParameter = "SOURCE_IP"
	ParamImplClassUID    AssociationParameter = "IMPLEMENTATION_CLASS_UID"
	ParamImplVersionName AssociationParameter = "IMPLEMENTATION_VERSION_NAME"
)

// IsIPTyped reports whether the parameter carries an IP address, which
// unlocks the IP range operators.
func (p AssociationParameter) IsIPTyped() bool {
	return p == ParamSourceIP
}

// AllowedOperators returns the operator subset valid for this parameter.
// IP-typed parameters get the IP range operators; nothing at the association
// level supports the exists forms.
func (p AssociationParameter) AllowedOperators() []OperatorKind {
	if p.IsIPTyped() {
		return []OperatorKind{OpEq, OpStartsWith, OpIn, OpNotIn, OpIPStartsWith, OpIPInSubnet}
	}
	return []OperatorKind{OpEq, OpNe, OpContains, OpStartsWith, OpEndsWith, OpIn, OpNotIn}
}

// AssociationParameters lists every supported parameter.
var AssociationParameters = []AssociationParameter{
	ParamCallingAETitle,
	ParamCalledAETitle,
	ParamSourceIP,
	ParamImplClassUID,
	ParamImplVersionName,
}

// ModificationAction is the kind of mutation a TagModification applies.
type ModificationAction string

const (
	ModActionSet    ModificationAction = "set"
	ModActionDelete ModificationAction = "delete"
)

// DestinationType enumerates the supported storage/forwarding backends.
type DestinationType string

const (
	DestDICOMCStore      DestinationType = "dicom_cstore"
	DestDICOMWeb         DestinationType = "dicomweb"
	DestFilesystem       DestinationType = "filesystem"
	DestGCS              DestinationType = "gcs"
	DestGoogleHealthcare DestinationType = "google_healthcare"
)

// DestinationTypes lists every supported destination backend.
var DestinationTypes = []DestinationType{
	DestDICOMCStore, DestDICOMWeb, DestFilesystem, DestGCS, DestGoogleHealthcare,
}

// MatchCriterion is one DICOM tag condition of a rule.
type MatchCriterion struct {
	Tag   string       `json:"tag"`
	Op    OperatorKind `json:"op"`
	Value string       `json:"value,omitempty"`
}

// TagModification is one mutation applied to a matched dataset before it is
// forwarded. "set" writes Value with the given VR; "delete" removes the tag.
type TagModification struct {
	Action ModificationAction `json:"action"`
	Tag    string             `json:"tag"`
	Value  string             `json:"value,omitempty"`
	VR     string             `json:"vr,omitempty"`
}

// AssociationMatchCriterion is one condition on the network association
// carrying the dataset, as opposed to the dataset's own attributes.
type AssociationMatchCriterion struct {
	Parameter AssociationParameter `json:"parameter"`
	Op        OperatorKind         `json:"op"`
	Value     string               `json:"value"`
}

// Destination assigns one storage backend to a rule. Config is backend
// defined and opaque here beyond being a JSON object.
type Destination struct {
	Type   DestinationType `json:"type"`
	Config JSONMap         `json:"config"`
}

// ExecutionMode controls how a ruleset evaluates its rules.
type ExecutionMode string

const (
	ExecFirstMatch ExecutionMode = "FIRST_MATCH"
	ExecAllMatches ExecutionMode = "ALL_MATCHES"
)

// DefaultRulePriority is assigned when a draft does not set one.
const DefaultRulePriority = 100

// Ruleset is an ordered, named collection of routing rules.
type Ruleset struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description   *string       `gorm:"type:text" json:"description"`
	Priority      int           `gorm:"not null;default:0" json:"priority"`
	ExecutionMode ExecutionMode `gorm:"type:varchar(20);not null;default:'FIRST_MATCH'" json:"execution_mode"`
	IsActive      bool          `gorm:"default:true" json:"is_active"`

	Rules []Rule `gorm:"foreignKey:RulesetID" json:"rules,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Ruleset) TableName() string {
	return "rulesets"
}

// BeforeCreate hook
func (rs *Ruleset) BeforeCreate(tx *gorm.DB) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	return nil
}

// Rule is a named, prioritized set of match criteria, tag modifications and
// destination assignments belonging to a ruleset.
type Rule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RulesetID   uuid.UUID `gorm:"type:uuid;not null;index" json:"ruleset_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Priority    int       `gorm:"not null;default:100" json:"priority"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	MatchCriteria       MatchCriteriaList       `gorm:"type:jsonb;not null;default:'[]'" json:"match_criteria"`
	TagModifications    TagModificationList     `gorm:"type:jsonb;not null;default:'[]'" json:"tag_modifications"`
	Destinations        DestinationList         `gorm:"type:jsonb;not null;default:'[]'" json:"destinations"`
	ApplicableSources   StringList              `gorm:"type:jsonb" json:"applicable_sources,omitempty"`
	AssociationCriteria AssociationCriteriaList `gorm:"type:jsonb" json:"association_criteria,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Rule) TableName() string {
	return "rules"
}

// BeforeCreate hook
func (r *Rule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RuleCreatePayload is the wire body for creating a rule.
type RuleCreatePayload struct {
	Name                string                      `json:"name"`
	Description         *string                     `json:"description"`
	Priority            int                         `json:"priority"`
	IsActive            bool                        `json:"is_active"`
	MatchCriteria       []MatchCriterion            `json:"match_criteria"`
	TagModifications    []TagModification           `json:"tag_modifications"`
	Destinations        []Destination               `json:"destinations"`
	ApplicableSources   []string                    `json:"applicable_sources,omitempty"`
	AssociationCriteria []AssociationMatchCriterion `json:"association_criteria,omitempty"`
}

// RuleUpdatePayload is the wire body for updating a rule. Nil fields are
// left untouched.
type RuleUpdatePayload struct {
	Name                *string                      `json:"name,omitempty"`
	Description         *string                      `json:"description,omitempty"`
	Priority            *int                         `json:"priority,omitempty"`
	IsActive            *bool                        `json:"is_active,omitempty"`
	MatchCriteria       *[]MatchCriterion            `json:"match_criteria,omitempty"`
	TagModifications    *[]TagModification           `json:"tag_modifications,omitempty"`
	Destinations        *[]Destination               `json:"destinations,omitempty"`
	ApplicableSources   *[]string                    `json:"applicable_sources,omitempty"`
	AssociationCriteria *[]AssociationMatchCriterion `json:"association_criteria,omitempty"`
}

// RulesetCreatePayload is the wire body for creating a ruleset.
type RulesetCreatePayload struct {
	Name          string        `json:"name"`
	Description   *string       `json:"description"`
	Priority      int           `json:"priority"`
	ExecutionMode ExecutionMode `json:"execution_mode"`
	IsActive      bool          `json:"is_active"`
}

// RulesetUpdatePayload is the wire body for updating a ruleset.
type RulesetUpdatePayload struct {
	Name          *string        `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Priority      *int           `json:"priority,omitempty"`
	ExecutionMode *ExecutionMode `json:"execution_mode,omitempty"`
	IsActive      *bool          `json:"is_active,omitempty"`
}
