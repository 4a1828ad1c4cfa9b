//go:build !darwin || !cgo

package smc

type nullDriver struct{}

// NewDriver returns a driver that is never available on this platform.
func NewDriver() Driver {
	return nullDriver{}
}

func (nullDriver) Open() error { return ErrUnavailable }

func (nullDriver) Call(uint32, *[ParamSize]byte, *[ParamSize]byte) error { return ErrUnavailable }

func (nullDriver) Close() error { return nil }
