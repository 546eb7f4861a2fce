package sim

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// SimulationError reports the module occurrence whose simulation failed.
type SimulationError struct {
	Module string
	Index  int
	Range  hcl.Range
	// Setup is true when the failure happened in SimulateSetup.
	Setup bool
	Err   error
}

func (e *SimulationError) Error() string {
	phase := "loop"
	if e.Setup {
		phase = "setup"
	}
	prefix := ""
	if e.Range.Filename != "" {
		prefix = e.Range.String() + ": "
	}
	return fmt.Sprintf("%ssimulation %s of module %q (#%d) failed: %v", prefix, phase, e.Module, e.Index, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }
