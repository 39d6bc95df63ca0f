package simulator

import (
	"fmt"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// UnknownCoreError reports that a requested core id is not present in the
// topology.
type UnknownCoreError struct {
	CoreID hssmodel.CoreID
}

func (e *UnknownCoreError) Error() string {
	return fmt.Sprintf("simulator: unknown core %q", e.CoreID)
}

// InvariantError reports an internal invariant violation: a component's
// current_budget going negative beyond tolerance after a charge. It is
// always fatal; Run returns it and the simulation stops. Events that name
// an unknown task or component are not reported through it: their handlers
// log them at error level and drop them.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "simulator: invariant violation: " + e.Message
}
