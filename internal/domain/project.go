package domain

import "time"

// Project groups the items imported from one asset list.
type Project struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedBy string    `json:"created_by" yaml:"created_by"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
