// Package fserr holds the error kinds shared by the filesystem packages.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrEnumeration = errors.New("fexp: volume enumeration failed")
	ErrNotFound    = errors.New("fexp: not found")
	ErrPermission  = errors.New("fexp: permission denied")
	ErrIO          = errors.New("fexp: i/o error")
	ErrLaunch      = errors.New("fexp: failed to launch default handler")
)

// Error carries the operation and path that failed together with its kind.
// errors.Is matches both the kind sentinel and the wrapped cause.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Classify maps an OS error onto ErrNotFound, ErrPermission or ErrIO.
func Classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	default:
		return ErrIO
	}
}

func Wrap(kind error, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// WrapOS wraps err with the kind Classify picks for it.
func WrapOS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return Wrap(Classify(err), op, path, err)
}
