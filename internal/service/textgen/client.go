// Package textgen wraps single-shot calls to an external text-generation
// provider and the retry policy applied on top of them.
package textgen

import (
	"context"
	"errors"
)

// Client performs one outbound generation call per invocation. It holds no
// retry logic; that is the Retryer's job.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrRateLimited means the provider signalled throttling. Transient,
	// worth waiting for.
	ErrRateLimited = errors.New("textgen: rate limited")
	// ErrUpstream covers network failures and non-success provider replies.
	ErrUpstream = errors.New("textgen: upstream error")
	// ErrMalformedResponse means the reply could not be parsed into text.
	ErrMalformedResponse = errors.New("textgen: malformed response")
)
