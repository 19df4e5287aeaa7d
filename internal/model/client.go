package model

import (
	"encoding/json"
	"time"
)

// Client is one advisory client whose forms an administrator fills in.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FormRecord is one persisted form document for a client/module pair. Data
// is kept as raw JSON: the forms are loosely typed and only the engine's
// coercion layer assigns meaning to individual values.
type FormRecord struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Module      ModuleKey       `json:"module"`
	Data        json.RawMessage `json:"data"`
	IsCompleted bool            `json:"is_completed"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ModuleFlags records, per module, whether a record exists for the client.
// Modules absent from the map are simply not yet started.
type ModuleFlags map[ModuleKey]bool
