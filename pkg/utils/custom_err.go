package utils

import "errors"

var (
	ErrPOINotFound          = errors.New("poi not found")
	ErrChangesetOpenFailed  = errors.New("changeset open failed")
	ErrChangesetCloseFailed = errors.New("changeset close failed")
	ErrUnsupportedGeometry  = errors.New("unsupported geometry")
	ErrGatewayUnavailable   = errors.New("gateway unavailable")
	ErrInvalidBoundingBox   = errors.New("invalid bounding box")
	ErrDatabaseError        = errors.New("database error")
)
