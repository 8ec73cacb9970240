package addr

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a position in a byte-addressed space: a byte offset plus a
// sub-byte bit offset in [0, 8). The zero value is the null address.
// Addresses are totally ordered.
type Address struct {
	bits uint64
}

// Size is a byte+bit magnitude, always >= 0. The zero value is the empty
// size.
type Size struct {
	bits uint64
}

// FromBytes returns the address at the given byte offset.
func FromBytes(b uint64) Address {
	return Address{bits: b * 8}
}

// New returns the address at the given byte offset plus bit offset.
// bit must be in [0, 8).
func New(b uint64, bit uint8) Address {
	if bit >= 8 {
		panic(fmt.Sprintf("addr: bit offset %d out of range", bit))
	}
	return Address{bits: b*8 + uint64(bit)}
}

// Byte returns the byte component of the address.
func (a Address) Byte() uint64 {
	return a.bits / 8
}

// Bit returns the sub-byte bit component of the address.
func (a Address) Bit() uint8 {
	return uint8(a.bits % 8)
}

// IsNull reports whether a is the null (zero) address.
func (a Address) IsNull() bool {
	return a.bits == 0
}

// Add returns the address advanced by s.
func (a Address) Add(s Size) Address {
	return Address{bits: a.bits + s.bits}
}

// Sub returns the address moved backward by s. It panics if the result
// would be negative; callers guard against underflow.
func (a Address) Sub(s Size) Address {
	if s.bits > a.bits {
		panic("addr: address underflow")
	}
	return Address{bits: a.bits - s.bits}
}

// Diff returns the magnitude a - other. It panics if other > a.
func (a Address) Diff(other Address) Size {
	if other.bits > a.bits {
		panic("addr: negative address difference")
	}
	return Size{bits: a.bits - other.bits}
}

// Compare returns -1 if a < other, 0 if equal, 1 if a > other.
func (a Address) Compare(other Address) int {
	switch {
	case a.bits < other.bits:
		return -1
	case a.bits > other.bits:
		return 1
	default:
		return 0
	}
}

// Before reports whether a comes before other.
func (a Address) Before(other Address) bool {
	return a.bits < other.bits
}

// After reports whether a comes after other.
func (a Address) After(other Address) bool {
	return a.bits > other.bits
}

// AsSize reinterprets the address as a magnitude from the null address.
func (a Address) AsSize() Size {
	return Size{bits: a.bits}
}

// String formats the address as hex, with a ".bit" suffix only when the
// bit offset is nonzero: "0x32", "0x32.4".
func (a Address) String() string {
	if a.Bit() == 0 {
		return fmt.Sprintf("0x%x", a.Byte())
	}
	return fmt.Sprintf("0x%x.%d", a.Byte(), a.Bit())
}

// Parse parses an address in the format produced by String. The byte part
// may be hex with an 0x prefix or plain decimal; the ".bit" suffix is
// optional.
func Parse(s string) (Address, error) {
	bytePart := s
	var bitPart string
	if i := strings.IndexByte(s, '.'); i >= 0 {
		bytePart, bitPart = s[:i], s[i+1:]
	}

	var b uint64
	var err error
	if strings.HasPrefix(bytePart, "0x") || strings.HasPrefix(bytePart, "0X") {
		b, err = strconv.ParseUint(bytePart[2:], 16, 64)
	} else {
		b, err = strconv.ParseUint(bytePart, 10, 64)
	}
	if err != nil {
		return Address{}, fmt.Errorf("parsing address %q: %w", s, err)
	}

	var bit uint64
	if bitPart != "" {
		bit, err = strconv.ParseUint(bitPart, 10, 8)
		if err != nil || bit >= 8 {
			return Address{}, fmt.Errorf("parsing address %q: invalid bit offset", s)
		}
	}

	return New(b, uint8(bit)), nil
}

// MustParse is Parse for statically-known inputs; it panics on error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns the size spanning the given number of whole bytes.
func Bytes(n uint64) Size {
	return Size{bits: n * 8}
}

// Bits returns the size spanning the given number of bits.
func Bits(n uint64) Size {
	return Size{bits: n}
}

// ByteCount returns the whole-byte component of the size.
func (s Size) ByteCount() uint64 {
	return s.bits / 8
}

// BitCount returns the sub-byte bit component of the size.
func (s Size) BitCount() uint8 {
	return uint8(s.bits % 8)
}

// IsZero reports whether the size is empty.
func (s Size) IsZero() bool {
	return s.bits == 0
}

// Add returns s + other.
func (s Size) Add(other Size) Size {
	return Size{bits: s.bits + other.bits}
}

// Sub returns s - other. It panics if other > s.
func (s Size) Sub(other Size) Size {
	if other.bits > s.bits {
		panic("addr: size underflow")
	}
	return Size{bits: s.bits - other.bits}
}

// Mul returns the size scaled by n.
func (s Size) Mul(n uint64) Size {
	return Size{bits: s.bits * n}
}

// Div returns the number of whole multiples of other that fit in s.
// It panics when other is zero.
func (s Size) Div(other Size) uint64 {
	if other.bits == 0 {
		panic("addr: division by zero size")
	}
	return s.bits / other.bits
}

// Compare returns -1 if s < other, 0 if equal, 1 if s > other.
func (s Size) Compare(other Size) int {
	switch {
	case s.bits < other.bits:
		return -1
	case s.bits > other.bits:
		return 1
	default:
		return 0
	}
}

// Min returns the smaller of s and other.
func (s Size) Min(other Size) Size {
	if other.bits < s.bits {
		return other
	}
	return s
}

// AsAddress reinterprets the magnitude as an address from null.
func (s Size) AsAddress() Address {
	return Address{bits: s.bits}
}

// String formats the size like an address: "0x18", "0x18.2".
func (s Size) String() string {
	return s.AsAddress().String()
}

// ParseSize parses a size in the same format Parse accepts.
func ParseSize(str string) (Size, error) {
	a, err := Parse(str)
	if err != nil {
		return Size{}, err
	}
	return a.AsSize(), nil
}
