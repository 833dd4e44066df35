package textgen

import (
	"context"
	"errors"
	"time"
)

// retryState is one node of the retry state machine. Making the states
// explicit keeps the transient/fatal split a testable contract instead of
// implicit loop control.
type retryState int

const (
	stateAttempting retryState = iota
	stateWaitingBackoff
	stateSucceeded
	stateExhausted
)

// backoffBase is multiplied by the 1-based attempt number to produce the
// wait after a rate-limited attempt: 2s, 4s, 6s, ...
const backoffBase = 2 * time.Second

// DefaultMaxAttempts bounds the retry budget unless configured otherwise.
const DefaultMaxAttempts = 3

// Retryer wraps a Client with bounded retries on rate-limit signals. Any
// other failure kind stops immediately and propagates.
type Retryer struct {
	client      Client
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetryer builds a Retryer around client. maxAttempts <= 0 is kept as
// given: such a Retryer fails every call without touching the client.
func NewRetryer(client Client, maxAttempts int) *Retryer {
	return &Retryer{
		client:      client,
		maxAttempts: maxAttempts,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Generate runs the state machine: attempt the client call; on rate limit,
// wait attempt*2s and re-attempt up to the budget; on any other error,
// exhaust immediately. The last error is propagated once exhausted.
func (r *Retryer) Generate(ctx context.Context, prompt string) (string, error) {
	state := stateAttempting
	attempt := 0
	var text string
	lastErr := errors.New("textgen: retry budget is zero")

	for {
		switch state {
		case stateAttempting:
			if attempt >= r.maxAttempts {
				state = stateExhausted
				continue
			}
			attempt++
			out, err := r.client.Generate(ctx, prompt)
			switch {
			case err == nil:
				text = out
				state = stateSucceeded
			case errors.Is(err, ErrRateLimited) && attempt < r.maxAttempts:
				lastErr = err
				state = stateWaitingBackoff
			default:
				lastErr = err
				state = stateExhausted
			}
		case stateWaitingBackoff:
			if err := r.sleep(ctx, time.Duration(attempt)*backoffBase); err != nil {
				lastErr = err
				state = stateExhausted
				continue
			}
			state = stateAttempting
		case stateSucceeded:
			return text, nil
		case stateExhausted:
			return "", lastErr
		}
	}
}
