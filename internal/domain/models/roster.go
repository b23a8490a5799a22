package models

import "time"

// PlayerIdentity is one entry of the roster directory. Rows are created or
// refreshed in bulk by a roster sync and are read-only everywhere else.
type PlayerIdentity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Team        string    `json:"team"`
	LastUpdated time.Time `json:"lastUpdated"`
}
