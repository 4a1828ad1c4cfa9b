package smc

import "encoding/binary"

// ParamSize is the size of the SMCParamStruct exchanged with the kernel.
const ParamSize = 80

// User client method and data8 operation codes.
const (
	selectorHandleYPCEvent uint32 = 2

	cmdReadKey    uint8 = 5
	cmdGetKeyInfo uint8 = 9
)

// resultSuccess is the SMC-level result code for a completed operation.
// The kernel call itself can succeed while the controller reports
// kSMCKeyNotFound (0x84) or similar here.
const resultSuccess uint8 = 0

// Field offsets inside SMCParamStruct as laid out by the C compiler.
const (
	offKey          = 0
	offVersMajor    = 4
	offVersMinor    = 5
	offVersBuild    = 6
	offVersReserved = 7
	offVersRelease  = 8
	offPLimitVer    = 12
	offPLimitLen    = 14
	offPLimitCPU    = 16
	offPLimitGPU    = 20
	offPLimitMem    = 24
	offDataSize     = 28
	offDataType     = 32
	offDataAttrs    = 36
	offResult       = 40
	offStatus       = 41
	offData8        = 42
	offData32       = 44
	offBytes        = 48
)

// Version mirrors SMCVersion.
type Version struct {
	Major, Minor, Build, Reserved uint8
	Release                       uint16
}

// PLimitData mirrors SMCPLimitData.
type PLimitData struct {
	Version   uint16
	Length    uint16
	CPUPLimit uint32
	GPUPLimit uint32
	MemPLimit uint32
}

// KeyInfo mirrors SMCKeyInfoData.
type KeyInfo struct {
	DataSize       uint32
	DataType       DataType
	DataAttributes uint8
}

// Param is the decoded form of SMCParamStruct.
type Param struct {
	Key     Key
	Vers    Version
	PLimit  PLimitData
	KeyInfo KeyInfo
	Result  uint8
	Status  uint8
	Data8   uint8
	Data32  uint32
	Bytes   [32]byte
}

// All supported Macs (x86_64 and arm64) are little-endian, and the kernel
// reads the struct in native order.
var native = binary.LittleEndian

// MarshalTo writes p into b using the C struct layout. Padding bytes are zeroed.
func (p *Param) MarshalTo(b *[ParamSize]byte) {
	*b = [ParamSize]byte{}
	native.PutUint32(b[offKey:], uint32(p.Key))
	b[offVersMajor] = p.Vers.Major
	b[offVersMinor] = p.Vers.Minor
	b[offVersBuild] = p.Vers.Build
	b[offVersReserved] = p.Vers.Reserved
	native.PutUint16(b[offVersRelease:], p.Vers.Release)
	native.PutUint16(b[offPLimitVer:], p.PLimit.Version)
	native.PutUint16(b[offPLimitLen:], p.PLimit.Length)
	native.PutUint32(b[offPLimitCPU:], p.PLimit.CPUPLimit)
	native.PutUint32(b[offPLimitGPU:], p.PLimit.GPUPLimit)
	native.PutUint32(b[offPLimitMem:], p.PLimit.MemPLimit)
	native.PutUint32(b[offDataSize:], p.KeyInfo.DataSize)
	native.PutUint32(b[offDataType:], uint32(p.KeyInfo.DataType))
	b[offDataAttrs] = p.KeyInfo.DataAttributes
	b[offResult] = p.Result
	b[offStatus] = p.Status
	b[offData8] = p.Data8
	native.PutUint32(b[offData32:], p.Data32)
	copy(b[offBytes:], p.Bytes[:])
}

// UnmarshalFrom fills p from the C struct layout in b.
func (p *Param) UnmarshalFrom(b *[ParamSize]byte) {
	p.Key = Key(native.Uint32(b[offKey:]))
	p.Vers = Version{
		Major:    b[offVersMajor],
		Minor:    b[offVersMinor],
		Build:    b[offVersBuild],
		Reserved: b[offVersReserved],
		Release:  native.Uint16(b[offVersRelease:]),
	}
	p.PLimit = PLimitData{
		Version:   native.Uint16(b[offPLimitVer:]),
		Length:    native.Uint16(b[offPLimitLen:]),
		CPUPLimit: native.Uint32(b[offPLimitCPU:]),
		GPUPLimit: native.Uint32(b[offPLimitGPU:]),
		MemPLimit: native.Uint32(b[offPLimitMem:]),
	}
	p.KeyInfo = KeyInfo{
		DataSize:       native.Uint32(b[offDataSize:]),
		DataType:       DataType(native.Uint32(b[offDataType:])),
		DataAttributes: b[offDataAttrs],
	}
	p.Result = b[offResult]
	p.Status = b[offStatus]
	p.Data8 = b[offData8]
	p.Data32 = native.Uint32(b[offData32:])
	copy(p.Bytes[:], b[offBytes:])
}
