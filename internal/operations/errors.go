package operations

import (
	"errors"
	"fmt"
)

var (
	// ErrNotGreater is returned when an explicit version does not increase the current one.
	ErrNotGreater = errors.New("new version must be greater than current version")

	// ErrTagExists is returned when the tag for the new version is already present.
	ErrTagExists = errors.New("tag already exists")

	// ErrUnknownOperation is returned for operation kinds other than increment or specify.
	ErrUnknownOperation = errors.New("unknown operation")
)

// FailureKind classifies why an update did not complete.
type FailureKind int

const (
	KindUnknownProject FailureKind = iota + 1
	KindNotVersioned
	KindMalformedVersion
	KindNotGreater
	KindTagExists
	KindPersist
	KindVersionControl
	KindDiscovery
)

func (k FailureKind) String() string {
	switch k {
	case KindUnknownProject:
		return "unknown project"
	case KindNotVersioned:
		return "missing version marker"
	case KindMalformedVersion:
		return "malformed version"
	case KindNotGreater:
		return "version not greater"
	case KindTagExists:
		return "tag exists"
	case KindPersist:
		return "persist failed"
	case KindVersionControl:
		return "version control failed"
	case KindDiscovery:
		return "project discovery failed"
	default:
		return "unknown failure"
	}
}

// Rejected reports whether the failure was caught by validation, before
// anything was written.
func (k FailureKind) Rejected() bool {
	switch k {
	case KindMalformedVersion, KindNotGreater, KindTagExists:
		return true
	default:
		return false
	}
}

// UpdateError is the typed failure returned by Manager.Update.
type UpdateError struct {
	Kind    FailureKind
	Project string
	Err     error
}

func (e *UpdateError) Error() string {
	if e.Project == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Project, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// KindOf returns the FailureKind carried by err, or 0 when err is not an UpdateError.
func KindOf(err error) FailureKind {
	var ue *UpdateError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return 0
}

func fail(kind FailureKind, project string, err error) *UpdateError {
	return &UpdateError{Kind: kind, Project: project, Err: err}
}
