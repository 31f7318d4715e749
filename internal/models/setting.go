package models

import "time"

// Setting is one persisted preference. Rows are scoped by organization and
// application so several apps can share a database file.
type Setting struct {
	Organization string    `gorm:"primaryKey;size:64" json:"organization"`
	Application  string    `gorm:"primaryKey;size:64" json:"application"`
	Key          string    `gorm:"primaryKey;size:64" json:"key"`
	Value        string    `gorm:"type:text" json:"value"`
	UpdatedAt    time.Time `json:"updated_at"`
}
