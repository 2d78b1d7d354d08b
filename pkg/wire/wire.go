package wire

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Prefix marks a wire string. It is the two characters '\' and 'x', not an
// escape sequence.
const Prefix = `\x`

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Same logical value always produces identical bytes.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Every integer decoded into any becomes int64, so callers never
		// see a mix of uint64 and int64 for the same field.
		IntDec:    cbor.IntDecConvertSigned,
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serializes v and returns its wire string.
func Encode(v any) (string, error) {
	data, err := EncodeBytes(v)
	if err != nil {
		return "", err
	}
	return Prefix + hex.EncodeToString(data), nil
}

// Decode parses a wire string into a value from the documented domain.
func Decode(s string) (any, error) {
	var v any
	if err := DecodeInto(s, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeInto parses a wire string into dst, which must be a non-nil pointer.
func DecodeInto(s string, dst any) error {
	data, err := unwrap(s)
	if err != nil {
		return err
	}
	return DecodeBytes(data, dst)
}

// EncodeBytes returns the serialized form of v without the hex wrapper.
func EncodeBytes(v any) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return data, nil
}

// DecodeBytes deserializes data produced by EncodeBytes into dst.
// Trailing bytes after the first item are rejected.
func DecodeBytes(data []byte, dst any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	if err := decMode.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

// Convert copies src into dst by serializing and deserializing it, so a
// generic value (map[string]any) can be read as a typed struct.
func Convert(src, dst any) error {
	data, err := EncodeBytes(src)
	if err != nil {
		return err
	}
	return DecodeBytes(data, dst)
}

// IsWire reports whether s carries the wire prefix. It does not validate
// the payload.
func IsWire(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

func unwrap(s string) ([]byte, error) {
	if !IsWire(s) {
		return nil, ErrMissingPrefix
	}
	data, err := hex.DecodeString(s[len(Prefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return data, nil
}
