package t9n

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedTypeOrVersion = errors.New("unsupported transaction type or version")
	ErrMalformedTransaction     = errors.New("malformed transaction")
	ErrSignatureLength          = errors.New("signature must have exactly two elements")
)

// UnsupportedTypeOrVersionError reports a (type, version) pair with no known shape.
type UnsupportedTypeOrVersionError struct {
	Type    string
	Version string
}

func (e *UnsupportedTypeOrVersionError) Error() string {
	return fmt.Sprintf("%s: type %q, version %q", ErrUnsupportedTypeOrVersion, e.Type, e.Version)
}

func (e *UnsupportedTypeOrVersionError) Unwrap() error {
	return ErrUnsupportedTypeOrVersion
}

// ResourceBoundsError reports a resource bound whose hex integers could not be parsed.
type ResourceBoundsError struct {
	Resource string
	Field    string
	Err      error
}

func (e *ResourceBoundsError) Error() string {
	return fmt.Sprintf("resource bounds %s.%s: %v", e.Resource, e.Field, e.Err)
}

func (e *ResourceBoundsError) Unwrap() error {
	return e.Err
}
