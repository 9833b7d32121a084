// player/service/errors.go
package service

import (
	"errors"

	"github.com/naijascout/scout-services/player/store"
	"github.com/naijascout/scout-services/shared/apperr"
)

const playerResource = "player"

// storeErr translates store sentinels into the apperr taxonomy. Anything
// unrecognized is an unexpected persistence failure.
func storeErr(op, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrPlayerNotFound):
		return &apperr.NotFoundError{Resource: playerResource, ID: id}
	case errors.Is(err, store.ErrDuplicatePlayer):
		return &apperr.ConflictError{Message: "Player already exists", Err: err}
	default:
		return &apperr.StoreError{Op: op, Err: err}
	}
}
