package entity

import (
	"errors"
	"time"
)

// EmissionID identifies one dispatched host message.
type EmissionID string

// ErrInvalidEmission is returned when an emission cannot be persisted.
var ErrInvalidEmission = errors.New("invalid emission")

// Emission records a host message after the channel accepted or refused it.
type Emission struct {
	ID           EmissionID  `json:"id"`
	RunID        string      `json:"runId"`
	Type         MessageType `json:"type"`
	TargetOrigin string      `json:"targetOrigin"`
	Transport    string      `json:"transport"`
	PayloadSize  int         `json:"payloadSize"`
	// PayloadDigest is empty for messages without payload.
	PayloadDigest string    `json:"payloadDigest,omitempty"`
	Delivered     bool      `json:"delivered"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate checks the fields the history store requires.
func (e *Emission) Validate() error {
	if e == nil || e.ID == "" || e.RunID == "" {
		return ErrInvalidEmission
	}
	if !e.Type.Valid() {
		return ErrInvalidEmission
	}
	if e.CreatedAt.IsZero() {
		return ErrInvalidEmission
	}
	return nil
}

// ShortID returns the random suffix of the emission ID.
func (e *Emission) ShortID() string {
	id := string(e.ID)
	if len(id) < 6 {
		return id
	}
	return id[len(id)-6:]
}

// EmissionTypeCount is an aggregate row of the emission history.
type EmissionTypeCount struct {
	Type      MessageType `json:"type"`
	Total     int64       `json:"total"`
	Delivered int64       `json:"delivered"`
}
