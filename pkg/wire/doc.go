// Package wire converts application values to the text form stored by the
// Passport account service and back.
//
// A value is serialized with CBOR using Core Deterministic Encoding
// (RFC 8949 §4.2), hex-encoded, and prefixed with the two literal
// characters `\x`. The result is plain ASCII that survives JSON transport
// and text-only storage without further escaping:
//
//	s, _ := wire.Encode(map[string]any{"theme": "dark", "size": 3})
//	// s == `\xa26473697a6503657468656d65646461726b`
//
//	v, _ := wire.Decode(s)
//	// v == map[string]any{"size": int64(3), "theme": "dark"}
//
// # Value domain
//
// Decoding into `any` always yields one of: nil, bool, int64, float64,
// string, []byte, []any or map[string]any. Values built from those types
// round-trip exactly. Any other Go value CBOR can represent (structs with
// json or cbor tags, typed slices and maps) is accepted by Encode and can be
// read back with DecodeInto.
//
// Unsigned integers above math.MaxInt64 encode fine but cannot be decoded
// into `any`, which only holds int64; Decode reports ErrMalformed for them.
// DecodeInto a uint64 destination reads them back.
//
// # Errors
//
// Decode reports ErrMissingPrefix, ErrInvalidHex or ErrMalformed; Encode
// reports ErrUnsupported. All of them can be matched with errors.Is.
package wire
