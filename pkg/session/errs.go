package session

import "errors"

var (
	ErrNoSuchItem = errors.New("session: no such item")
	ErrNoSearch   = errors.New("session: no search engine configured")
	ErrNoOpener   = errors.New("session: no opener configured")
)
