// Package types contains common types used across the application
package types

import "github.com/okian/regatta/internal/domain/model"

// Entry is one row of the standings table.
type Entry struct {
	Rank  int        `json:"rank" yaml:"rank"`
	Team  model.Team `json:"team" yaml:"team"`
	Total int        `json:"total" yaml:"total"`
}
