package tfeval

import "errors"

// ErrDegenerateEvaluation is returned when an IRR-like formula's
// denominator is zero or not finite.
var ErrDegenerateEvaluation = errors.New("tfeval: degenerate evaluation")

// ErrNotPriced reports use of an Unpriced evaluator where priced state is
// needed. No function in this package returns it: the Unpriced and Priced
// states are the separate types Evaluator and PricedEvaluator.
var ErrNotPriced = errors.New("tfeval: evaluator has not been priced")
