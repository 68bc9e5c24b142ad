package types

import "fmt"

// MismatchError reports an expression type a socket does not accept.
type MismatchError struct {
	Accepted Set
	Got      Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot drop a %s block on a %s value", e.Got, e.Accepted)
}
