package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NullableString struct {
	Value *string
	Set   bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type NullableTime struct {
	Value *time.Time
	Set   bool
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

type NullableFloat struct {
	Value *float64
	Set   bool
}

func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n.Value = &f
	return nil
}

// Event is a user-defined organizational context (trip, day, project).
// Events form a forest per user: ParentEventID is nil for roots and must
// reference an event of the same user otherwise.
type Event struct {
	ID            uuid.UUID  `json:"id" db:"event_id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	ParentEventID *uuid.UUID `json:"parent_event_id,omitempty" db:"parent_event_id"`
	Name          string     `json:"name" db:"name"`
	Description   *string    `json:"description,omitempty" db:"description"`
	StartDate     *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty" db:"end_date"`
	LocationName  *string    `json:"location_name,omitempty" db:"location_name"`
	GPSLatitude   *float64   `json:"gps_latitude,omitempty" db:"gps_latitude"`
	GPSLongitude  *float64   `json:"gps_longitude,omitempty" db:"gps_longitude"`
	SortOrder     int        `json:"sort_order" db:"sort_order"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateEventInput struct {
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	ParentEventID *uuid.UUID `json:"parent_event_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	LocationName  *string    `json:"location_name,omitempty"`
	GPSLatitude   *float64   `json:"gps_latitude,omitempty"`
	GPSLongitude  *float64   `json:"gps_longitude,omitempty"`
	SortOrder     *int       `json:"sort_order,omitempty"`
}

// UpdateEventInput carries a partial update of non-structural fields.
// The parent is never changed here; moves go through MoveEventInput.
type UpdateEventInput struct {
	Name         *string        `json:"name"`
	Description  NullableString `json:"description"`
	StartDate    NullableTime   `json:"start_date"`
	EndDate      NullableTime   `json:"end_date"`
	LocationName NullableString `json:"location_name"`
	GPSLatitude  NullableFloat  `json:"gps_latitude"`
	GPSLongitude NullableFloat  `json:"gps_longitude"`
	SortOrder    *int           `json:"sort_order"`
}

type MoveEventInput struct {
	NewParentID *uuid.UUID `json:"new_parent_id"`
}

const (
	MaxEventNameLen        = 200
	MaxEventDescriptionLen = 2000
)

func ValidateEventName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len([]rune(name)) > MaxEventNameLen {
		return &ValidationError{Field: "name", Message: "name must be at most 200 characters"}
	}
	return nil
}

func ValidateEventDescription(description *string) error {
	if description != nil && len([]rune(*description)) > MaxEventDescriptionLen {
		return &ValidationError{Field: "description", Message: "description must be at most 2000 characters"}
	}
	return nil
}

func ValidateGPS(lat, lon *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return &ValidationError{Field: "gps_latitude", Message: "gps_latitude must be between -90 and 90"}
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return &ValidationError{Field: "gps_longitude", Message: "gps_longitude must be between -180 and 180"}
	}
	return nil
}
