//go:build darwin && cgo

package smc

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <IOKit/IOKitLib.h>
#include <mach/mach.h>

static kern_return_t smc_open(io_connect_t *conn) {
	io_service_t service = IOServiceGetMatchingService(MACH_PORT_NULL, IOServiceMatching("AppleSMC"));
	if (service == 0) {
		return kIOReturnNotFound;
	}
	kern_return_t kr = IOServiceOpen(service, mach_task_self(), 0, conn);
	IOObjectRelease(service);
	return kr;
}

static kern_return_t smc_call(io_connect_t conn, uint32_t selector, void *in, void *out, size_t size) {
	size_t outSize = size;
	return IOConnectCallStructMethod(conn, selector, in, size, out, &outSize);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type iokitDriver struct {
	conn C.io_connect_t
}

// NewDriver returns the IOKit AppleSMC driver.
func NewDriver() Driver {
	return &iokitDriver{}
}

func (d *iokitDriver) Open() error {
	var conn C.io_connect_t
	if kr := C.smc_open(&conn); kr != C.KERN_SUCCESS {
		return fmt.Errorf("%w: IOServiceOpen AppleSMC: kern_return 0x%x", ErrUnavailable, uint32(kr))
	}
	d.conn = conn
	return nil
}

func (d *iokitDriver) Call(selector uint32, in, out *[ParamSize]byte) error {
	kr := C.smc_call(d.conn, C.uint32_t(selector),
		unsafe.Pointer(&in[0]), unsafe.Pointer(&out[0]), C.size_t(ParamSize))
	if kr != C.KERN_SUCCESS {
		return fmt.Errorf("IOConnectCallStructMethod: kern_return 0x%x", uint32(kr))
	}
	return nil
}

func (d *iokitDriver) Close() error {
	if d.conn == 0 {
		return nil
	}
	kr := C.IOServiceClose(d.conn)
	d.conn = 0
	if kr != C.KERN_SUCCESS {
		return fmt.Errorf("IOServiceClose: kern_return 0x%x", uint32(kr))
	}
	return nil
}
