package smc

import (
	"errors"
	"fmt"

	"siliconstats/internal/logger"
)

// ErrUnavailable is returned by drivers on hosts without an SMC user client.
var ErrUnavailable = errors.New("smc: service unavailable")

// Driver performs the raw struct exchange with the SMC user client.
type Driver interface {
	// Open acquires the user client connection.
	Open() error

	// Call invokes the given user client method with an input and output struct.
	Call(selector uint32, in, out *[ParamSize]byte) error

	// Close releases the connection.
	Close() error
}

// Client reads and decodes SMC keys. It owns the driver connection.
// A Client is not safe for concurrent use.
type Client struct {
	driver Driver
	open   bool
}

// NewClient creates a client over the given driver. The connection is not
// opened until Open is called.
func NewClient(d Driver) *Client {
	return &Client{driver: d}
}

// Open acquires the SMC connection. It reports false when the service is
// missing or the process lacks the privilege to open it.
func (c *Client) Open() bool {
	if c.open {
		return true
	}
	log := logger.WithComponent("smc")
	if err := c.driver.Open(); err != nil {
		log.Warn().Err(err).Msg("SMC unavailable, hardware temperatures disabled")
		return false
	}
	c.open = true
	log.Info().Msg("SMC connection opened")
	return true
}

// Close releases the connection. It is safe to call more than once.
func (c *Client) Close() {
	if !c.open {
		return
	}
	c.open = false
	if err := c.driver.Close(); err != nil {
		log := logger.WithComponent("smc")
		log.Warn().Err(err).Msg("Failed to close SMC connection")
	}
}

// IsOpen reports whether the connection is held.
func (c *Client) IsOpen() bool {
	return c.open
}

// ReadKey fetches the key's metadata, then its payload.
func (c *Client) ReadKey(key Key) (Reading, bool) {
	if !c.open {
		return Reading{}, false
	}

	info, ok := c.call(&Param{Key: key, Data8: cmdGetKeyInfo})
	if !ok || info.KeyInfo.DataSize == 0 {
		return Reading{}, false
	}
	size := info.KeyInfo.DataSize
	if size > 32 {
		size = 32
	}

	data, ok := c.call(&Param{
		Key:     key,
		KeyInfo: KeyInfo{DataSize: size},
		Data8:   cmdReadKey,
	})
	if !ok {
		return Reading{}, false
	}

	return Reading{
		Type:  info.KeyInfo.DataType,
		Size:  size,
		Bytes: data.Bytes,
	}, true
}

// Temperature reads and decodes the named key in degrees Celsius.
func (c *Client) Temperature(name string) (float64, bool) {
	key, err := ParseKey(name)
	if err != nil {
		return 0, false
	}
	r, ok := c.ReadKey(key)
	if !ok {
		return 0, false
	}
	return Decode(r)
}

func (c *Client) call(in *Param) (Param, bool) {
	var inBuf, outBuf [ParamSize]byte
	in.MarshalTo(&inBuf)

	if err := c.driver.Call(selectorHandleYPCEvent, &inBuf, &outBuf); err != nil {
		log := logger.WithComponent("smc")
		log.Debug().Err(err).Str("key", in.Key.String()).Uint8("op", in.Data8).Msg("SMC call failed")
		return Param{}, false
	}

	var out Param
	out.UnmarshalFrom(&outBuf)
	if out.Result != resultSuccess {
		return out, false
	}
	return out, true
}

// String is used in logs.
func (r Reading) String() string {
	return fmt.Sprintf("%s[%d] %s", r.Type, r.Size, Hex(r))
}
