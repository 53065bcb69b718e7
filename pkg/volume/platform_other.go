//go:build !linux && !darwin && !windows

package volume

import (
	"fmt"
	"runtime"
)

type unsupportedPlatform struct{}

func DefaultPlatform() Platform {
	return unsupportedPlatform{}
}

func (unsupportedPlatform) Identifiers() ([]string, error) {
	return nil, fmt.Errorf("volume listing is not supported on %s", runtime.GOOS)
}

func (unsupportedPlatform) Describe(id string) Descriptor {
	return Descriptor{Name: id, ID: id}
}

func (unsupportedPlatform) Space(id string) (uint64, uint64, error) {
	return 0, 0, fmt.Errorf("volume space is not supported on %s", runtime.GOOS)
}
