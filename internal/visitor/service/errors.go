package service

import (
	"errors"
	"fmt"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
)

// translateStoreErr maps sentinel errors from the store into domain errors.
// Domain errors raised inside Execute callbacks (invalid transitions,
// validation failures) pass through untouched so their messages survive to
// the API boundary.
func translateStoreErr(err error, visitorID id.VisitorID, op string) error {
	var dErr *dErrors.Error
	if errors.As(err, &dErr) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("visitor %s not found", visitorID))
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, op+" conflicted with a concurrent write")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, op+" failed: store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, op+" failed")
	}
}
