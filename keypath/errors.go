package keypath

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced while resolving a key path matches
// exactly one of these with errors.Is.
var (
	ErrInvalidKeyPath = errors.New("invalid key path")
	ErrValueNotFound  = errors.New("value not found")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrDataCorrupted  = errors.New("data corrupted")
)

// PathError is an error at a position of a document.
type PathError struct {
	Kind    error   // one of the Err* kinds
	Path    KeyPath // document path, including the attempted segments
	Message string
	Err     error
}

func (e *PathError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path.IsEmpty() {
		return fmt.Sprintf("%v: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%v at %s: %s", e.Kind, e.Path, msg)
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Errorf returns a *PathError of the given kind.
func Errorf(kind error, path KeyPath, format string, args ...any) *PathError {
	return &PathError{
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns a *PathError of the given kind around err. If err already
// is a *PathError it is returned unchanged so the original diagnostic
// context survives.
func Wrap(kind error, path KeyPath, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	return &PathError{Kind: kind, Path: path, Err: err}
}
