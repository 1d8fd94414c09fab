package provisioning

import (
	"fmt"
	"time"
)

// Phase is one ordered step of a pipeline run. A phase failure aborts the
// remaining phases; nothing is rolled back.
type Phase interface {
	Name() string
	Run(ctx *Context) error
}

// RunPhases executes the phases strictly in order, failing fast on the
// first error.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()

	for i, phase := range phases {
		phaseStart := time.Now()
		label := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, label)

		if err := phase.Run(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, label, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, label, time.Since(phaseStart))
	}

	ctx.Observer.Printf("Pipeline completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
