package bondattr

import "errors"

// ErrInvalidBondCode is returned when a bond code does not match
// NNNNNN.{IB|SH|SZ}.
var ErrInvalidBondCode = errors.New("bondattr: invalid bond code")

// ErrUnknownBond is returned by an AttributeStore when no attribute record
// is available for a code.
var ErrUnknownBond = errors.New("bondattr: unknown bond")
