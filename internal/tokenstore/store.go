// Package tokenstore persists the bearer token pair between console runs.
// It is a pure persistence shim: no expiry or validity logic lives here.
package tokenstore

import (
	"context"

	"github.com/dmitrijs2005/authconsole/internal/models"
)

// Store is the persistence contract for the credential pair.
//
// Contract:
//   - Save writes both tokens as one logical operation: either both land or
//     the previously stored pair remains.
//   - Load returns common.ErrNotFound when no complete pair is stored.
//   - Clear removes both entries unconditionally and succeeds even when the
//     store is already empty.
type Store interface {
	Save(ctx context.Context, pair models.TokenPair) error
	Load(ctx context.Context) (models.TokenPair, error)
	Clear(ctx context.Context) error
}
