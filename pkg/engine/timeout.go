package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/habitat/pkg/plan"
)

// EvalTimeout is the hard limit for evaluating one layout.
const EvalTimeout = 5 * time.Second

// evalResult carries one layout evaluation back to Evaluate.
type evalResult struct {
	plan   *plan.Plan
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a layout evaluation on ch, but returns a
// timeout error if it exceeds EvalTimeout. An editor re-evaluates on every
// change, so the generation counter drops a plan whose source has since
// been replaced.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*plan.Plan, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		// Check if this result is still relevant (not stale).
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			// A newer evaluation was started; discard this result.
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}

		return res.plan, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
