// Package members stores sailor membership lists, one flat file per
// affiliation.
package members

import (
	"context"

	"github.com/okian/regatta/internal/domain/model"
)

// Store provides read/write access to affiliation member lists.
type Store interface {
	// Load returns the members of an affiliation in file order.
	// Returns ErrNotFound if the affiliation has no file.
	Load(ctx context.Context, affiliation string) ([]model.Member, error)

	// Save replaces the member list of an affiliation.
	Save(ctx context.Context, affiliation string, members []model.Member) error

	// Affiliations lists the affiliation codes present in the store.
	Affiliations(ctx context.Context) ([]string, error)
}
