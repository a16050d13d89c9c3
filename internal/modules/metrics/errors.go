package metrics

import "fmt"

// InsufficientHistoryError is returned when the daily series is too short
// for the recent performance window.
type InsufficientHistoryError struct {
	Symbol string
	Have   int
	Need   int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient price history for %s: have %d daily observations, need %d", e.Symbol, e.Have, e.Need)
}
