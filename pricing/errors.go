package pricing

import "errors"

// ErrUnsupportedInterestType is returned for any bond whose InterestType is
// not Fixed; the core only implements the fixed-rate pricing formulas.
var ErrUnsupportedInterestType = errors.New("pricing: unsupported interest type")

// ErrUnderSpecified is returned when a pricing call supplies neither a YTM
// nor a price, or supplies both a YTM and a price at once.
var ErrUnderSpecified = errors.New("pricing: exactly one of ytm or price must be supplied")

// ErrRootFindFailed wraps a rootfind failure encountered while inverting
// price to YTM.
var ErrRootFindFailed = errors.New("pricing: root find failed")
