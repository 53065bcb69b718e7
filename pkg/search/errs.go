package search

import "errors"

var ErrInvalidPattern = errors.New("search: invalid exclude pattern")
