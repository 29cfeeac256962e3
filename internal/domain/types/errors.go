package types

import "errors"

// ErrInvalidWeights marks a weight table that is negative, NaN, or does not
// sum to 1.0. Raised at construction time, never per job.
var ErrInvalidWeights = errors.New("invalid score weights")
