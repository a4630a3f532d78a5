// Package scantoken classifies raw scanner input before it touches any store.
//
// Shop-floor scanners emit an opaque token per read: work-order travelers
// carry "WO-…" barcodes, and operator badges carry the operator's 24-hex
// directory ID. Classification is purely lexical, so malformed input is
// rejected without a lookup or a ledger write.
package scantoken

import "strings"

// Kind is the closed set of token classifications.
type Kind int

const (
	// Invalid means the token is neither a work-order barcode nor an
	// operator badge. Callers respond with a validation error and must not
	// mutate any state.
	Invalid Kind = iota
	// Barcode means the token names a work order ("WO-" prefix).
	Barcode
	// OperatorID means the token is a 24-character hex operator ID.
	OperatorID
)

// barcodePrefix is the literal traveler-label prefix.
const barcodePrefix = "WO-"

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Barcode:
		return "barcode"
	case OperatorID:
		return "operator"
	default:
		return "invalid"
	}
}

// Classify decides what a scan token represents.
//
// Barcode iff the token is non-empty and starts with "WO-". OperatorID iff
// the token is exactly 24 hexadecimal characters (case-insensitive).
// Everything else, including the empty string, is Invalid.
func Classify(token string) Kind {
	if strings.HasPrefix(token, barcodePrefix) {
		return Barcode
	}
	if isObjectIDHex(token) {
		return OperatorID
	}
	return Invalid
}

func isObjectIDHex(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
