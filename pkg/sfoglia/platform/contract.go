package platform

import "fmt"

// ContractError represents a violated precondition or caller contract:
// operating an uninstalled cache, double-installing, saving a registry that
// was never restored, handing update a view with no showing rendering, and
// so on. These are unrecoverable programmer errors; sfoglia surfaces them by
// panicking with a *ContractError rather than returning them, so a broken
// caller fails immediately instead of limping on with half-mutated state.
type ContractError struct {
	Op     string // Operation whose contract was violated (e.g., "cache update")
	Detail string // Description of the violated expectation
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("sfoglia: %s: %s", e.Op, e.Detail)
}

// Contractf panics with a *ContractError for the given operation.
func Contractf(op, format string, args ...any) {
	panic(&ContractError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
