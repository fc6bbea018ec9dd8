package collector

// PageOutcome says why a paginated fetch loop stopped. Callers branch on
// it explicitly instead of decoding sentinel errors.
type PageOutcome int

const (
	// PageComplete means the last page was reached or the item cap hit.
	PageComplete PageOutcome = iota
	// PageBudgetExhausted means the quota ledger (or the remote API)
	// refused further spending.
	PageBudgetExhausted
	// PageResourceError means the resource itself rejected the fetch,
	// e.g. comments disabled or a deleted video. Not retryable.
	PageResourceError
	// PageRetryExhausted means a transient failure outlived every retry.
	PageRetryExhausted
	// PageInterrupted means the context was cancelled mid-loop.
	PageInterrupted
)

func (o PageOutcome) String() string {
	switch o {
	case PageComplete:
		return "complete"
	case PageBudgetExhausted:
		return "budget-exhausted"
	case PageResourceError:
		return "resource-error"
	case PageRetryExhausted:
		return "retry-exhausted"
	case PageInterrupted:
		return "interrupted"
	}
	return "unknown"
}

// channelOutcome is the per-source verdict the run loop folds into its
// statistics and failure streak.
type channelOutcome int

const (
	channelCollected channelOutcome = iota
	channelFailed
	channelBudgetExhausted
	channelInterrupted
)
