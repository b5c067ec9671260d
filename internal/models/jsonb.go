package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The rule's criterion/modification/destination lists live in jsonb columns
// rather than join tables: the lists are owned wholesale by one rule, are
// edited and replaced as a unit, and their entries have no identity of their
// own.

// JSONMap is a free-form JSON object column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// MatchCriteriaList is a jsonb column of match criteria.
type MatchCriteriaList []MatchCriterion

// Value implements driver.Valuer.
func (l MatchCriteriaList) Value() (driver.Value, error) {
	return marshalList(l == nil, l)
}

// Scan implements sql.Scanner.
func (l *MatchCriteriaList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// TagModificationList is a jsonb column of tag modifications.
type TagModificationList []TagModification

// Value implements driver.Valuer.
func (l TagModificationList) Value() (driver.Value, error) {
	return marshalList(l == nil, l)
}

// Scan implements sql.Scanner.
func (l *TagModificationList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// DestinationList is a jsonb column of destination assignments.
type DestinationList []Destination

// Value implements driver.Valuer.
func (l DestinationList) Value() (driver.Value, error) {
	return marshalList(l == nil, l)
}

// Scan implements sql.Scanner.
func (l *DestinationList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// AssociationCriteriaList is a jsonb column of association criteria.
type AssociationCriteriaList []AssociationMatchCriterion

// Value implements driver.Valuer.
func (l AssociationCriteriaList) Value() (driver.Value, error) {
	return marshalList(l == nil, l)
}

// Scan implements sql.Scanner.
func (l *AssociationCriteriaList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// StringList is a jsonb column of strings.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return marshalList(l == nil, l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// marshalList encodes a slice column, storing nil as an empty JSON array so
// reads never surface SQL nulls.
func marshalList(isNil bool, v interface{}) (driver.Value, error) {
	if isNil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

func scanJSON(src, dest interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
