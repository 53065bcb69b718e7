// Package volume enumerates the storage volumes visible to the operating
// system together with their capacity.
package volume

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/krau/fexp/pkg/fserr"
)

type Kind int

const (
	Unknown Kind = iota
	Removable
	Fixed
	Network
	Optical
)

var kindNames = map[Kind]string{
	Unknown:   "unknown",
	Removable: "removable",
	Fixed:     "fixed",
	Network:   "network",
	Optical:   "optical",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// Label is the human readable name used in summaries.
func (k Kind) Label() string {
	switch k {
	case Removable:
		return "Removable"
	case Fixed:
		return "Hard disk"
	case Network:
		return "Network"
	case Optical:
		return "CD/DVD"
	default:
		return "Unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	*k = Unknown
	return nil
}

// Volume is a snapshot of one mounted volume. Used + Free == Total.
type Volume struct {
	Name       string `json:"name" yaml:"name"`
	ID         string `json:"id" yaml:"id"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty"`
	Filesystem string `json:"filesystem,omitempty" yaml:"filesystem,omitempty"`
	Kind       Kind   `json:"kind" yaml:"kind"`
	Total      uint64 `json:"total" yaml:"total"`
	Used       uint64 `json:"used" yaml:"used"`
	Free       uint64 `json:"free" yaml:"free"`
}

func (v Volume) Summary() string {
	return fmt.Sprintf("%s - %s - %s free of %s",
		v.Name, v.Kind.Label(), humanize.IBytes(v.Free), humanize.IBytes(v.Total))
}

// Descriptor is what a platform knows about a volume besides its capacity.
type Descriptor struct {
	Name       string
	ID         string
	Label      string
	Filesystem string
	Kind       Kind
}

// Platform is the operating system's view of its volumes. Identifiers are
// opaque to the enumerator and only passed back to Describe and Space.
type Platform interface {
	Identifiers() ([]string, error)
	Describe(id string) Descriptor
	Space(id string) (total, free uint64, err error)
}

// Failure is a volume whose capacity could not be queried.
type Failure struct {
	ID  string
	Err error
}

type Report struct {
	Volumes  []Volume
	Failures []Failure
}

type Enumerator struct {
	platform Platform
	retry    int
	summary  bool
}

type Option func(*Enumerator)

// WithRetry retries a failed capacity query up to n more times with
// exponential backoff. Permission and not-found errors are not retried.
func WithRetry(n int) Option {
	return func(e *Enumerator) {
		if n < 0 {
			n = 0
		}
		e.retry = n
	}
}

// WithSummary logs a one-line summary of every enumerated volume.
func WithSummary(enabled bool) Option {
	return func(e *Enumerator) {
		e.summary = enabled
	}
}

func NewEnumerator(p Platform, opts ...Option) *Enumerator {
	e := &Enumerator{platform: p}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enumerate queries every volume. It fails only when the platform cannot
// list its volumes; a volume whose capacity query fails is reported in
// Failures and left out of Volumes.
func (e *Enumerator) Enumerate(ctx context.Context) (*Report, error) {
	logger := log.FromContext(ctx)
	ids, err := e.platform.Identifiers()
	if err != nil {
		return nil, fserr.Wrap(fserr.ErrEnumeration, "enumerate volumes", "", err)
	}
	report := &Report{Volumes: make([]Volume, 0, len(ids))}
	for _, id := range ids {
		desc := e.platform.Describe(id)
		total, free, err := e.space(ctx, id)
		if err != nil {
			logger.Warn("failed to query volume space", "volume", id, "error", err)
			report.Failures = append(report.Failures, Failure{
				ID:  id,
				Err: fserr.Wrap(fserr.ErrEnumeration, "query space", id, err),
			})
			continue
		}
		if free > total {
			free = total
		}
		v := Volume{
			Name:       desc.Name,
			ID:         desc.ID,
			Label:      desc.Label,
			Filesystem: desc.Filesystem,
			Kind:       desc.Kind,
			Total:      total,
			Used:       total - free,
			Free:       free,
		}
		if v.Name == "" {
			v.Name = id
		}
		if v.ID == "" {
			v.ID = id
		}
		if e.summary {
			logger.Info(v.Summary())
		}
		report.Volumes = append(report.Volumes, v)
	}
	return report, nil
}

func (e *Enumerator) space(ctx context.Context, id string) (total, free uint64, err error) {
	op := func() error {
		var qerr error
		total, free, qerr = e.platform.Space(id)
		if qerr != nil && (errors.Is(qerr, fs.ErrPermission) || errors.Is(qerr, fs.ErrNotExist)) {
			return backoff.Permanent(qerr)
		}
		return qerr
	}
	b := backoff.WithContext(backoff.WithMaxRetries(newBackoff(), uint64(e.retry)), ctx)
	err = backoff.Retry(op, b)
	return total, free, err
}

func newBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// List enumerates the volumes of this machine.
func List(ctx context.Context, opts ...Option) ([]Volume, error) {
	report, err := NewEnumerator(DefaultPlatform(), opts...).Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	return report.Volumes, nil
}
