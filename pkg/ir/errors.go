package ir

import "errors"

var (
	ErrNodeNotFound       = errors.New("node not found")
	ErrDuplicateNode      = errors.New("duplicate node")
	ErrInvalidStorageKind = errors.New("invalid storage kind")
	ErrInvalidPayload     = errors.New("invalid symbol payload")

	ErrOverlappingRegions = errors.New("overlapping regions")
	ErrAddressNotMapped   = errors.New("address not mapped")
	ErrOutOfRange         = errors.New("address out of range")
	ErrInvalidRange       = errors.New("invalid range")
	ErrSizeMismatch       = errors.New("size mismatch")
)
