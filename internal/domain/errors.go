package domain

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable indicates the market data provider returned no rows for
// a symbol, the symbol is unrecognized, or the network request failed. The
// caller surfaces it to the user without retrying.
var ErrDataUnavailable = errors.New("market data unavailable")

// MinObservations is the minimum viable series length for model fitting.
// Fits below this length are numerically unreliable.
const MinObservations = 60

// InsufficientDataError indicates a series is too short for reliable model
// fitting. The user-facing remedy is to request a longer window.
type InsufficientDataError struct {
	Symbol string
	Have   int
	Want   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %d observations, need at least %d", e.Symbol, e.Have, e.Want)
}

// InvalidSeriesError indicates a price series violated its invariants
// (non-positive price, non-increasing dates).
type InvalidSeriesError struct {
	Symbol string
	Index  int
	Reason string
}

func (e *InvalidSeriesError) Error() string {
	return fmt.Sprintf("invalid series for %s at index %d: %s", e.Symbol, e.Index, e.Reason)
}

// ModelFitError indicates a single model failed to fit or forecast. It is
// reported per-model so sibling computations keep working; a failed GARCH fit
// never aborts the EGARCH fit on the same series.
type ModelFitError struct {
	Model string // "GARCH(1,1)" or "EGARCH(1,1)"
	Err   error
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("%s fit failed: %v", e.Model, e.Err)
}

func (e *ModelFitError) Unwrap() error {
	return e.Err
}
