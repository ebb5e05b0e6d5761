package store

import (
	"errors"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// ErrDomainViolation indicates an input number falls outside the unsigned
// 256 bit domain a store accepts. The check happens before any state is
// touched so a rejected input never leaves a partial mutation behind.
var ErrDomainViolation = errors.New("value outside the unsigned 256 bit domain")

// Value represents the one number a store holds. The domain is the full
// unsigned 256 bit range, 0 through 2^256-1.
type Value struct {
	n uint256.Int
}

// ToValue converts the specified big integer into a store value. Negative
// numbers and numbers wider than 256 bits are rejected.
func ToValue(b *big.Int) (Value, error) {
	if b == nil || b.Sign() < 0 {
		return Value{}, ErrDomainViolation
	}

	n, overflow := uint256.FromBig(b)
	if overflow {
		return Value{}, ErrDomainViolation
	}

	return Value{n: *n}, nil
}

// ParseValue converts the text form of a value, decimal or 0x prefixed
// hexadecimal, into a store value.
func ParseValue(s string) (Value, error) {
	var n *uint256.Int
	var err error

	switch {
	case strings.HasPrefix(s, "0x"):
		n, err = uint256.FromHex(s)
	default:
		n, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return Value{}, ErrDomainViolation
	}

	return Value{n: *n}, nil
}

// BigInt returns the value as a big integer.
func (v Value) BigInt() *big.Int {
	return v.n.ToBig()
}

// Equal reports whether the two values hold the same number.
func (v Value) Equal(v2 Value) bool {
	return v.n.Eq(&v2.n)
}

// String returns the decimal text form of the value.
func (v Value) String() string {
	return v.n.Dec()
}

// Hex returns the 0x prefixed hexadecimal text form of the value.
func (v Value) Hex() string {
	return v.n.Hex()
}

// MarshalText implements the encoding interface so values serialize in
// their decimal text form.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.n.Dec()), nil
}

// UnmarshalText implements the encoding interface and applies the same
// domain check as ParseValue.
func (v *Value) UnmarshalText(data []byte) error {
	val, err := ParseValue(string(data))
	if err != nil {
		return err
	}

	*v = val
	return nil
}
