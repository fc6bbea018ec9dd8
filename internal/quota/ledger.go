// Package quota tracks YouTube Data API unit spend across sessions.
// The remote quota pool is shared by every process that uses the key and
// is reset by Google on its own clock, so the ledger keeps two counters:
// what this session spent, and what all sessions spent since the last reset.
package quota

type Ledger struct {
	sessionUsed    int
	cumulativeUsed int
	dailyLimit     int
	safetyBuffer   int
}

func NewLedger(dailyLimit, safetyBuffer int) *Ledger {
	return &Ledger{
		dailyLimit:   dailyLimit,
		safetyBuffer: safetyBuffer,
	}
}

// Seed sets the cumulative counter from persisted state. It does not touch
// the session counter; a resumed run starts its session at zero.
func (l *Ledger) Seed(initialCumulative int) {
	if initialCumulative < 0 {
		initialCumulative = 0
	}
	l.cumulativeUsed = initialCumulative
}

// RecordCost charges units against both counters. Call it once per
// successful remote request, with the authoritative cost of that request.
func (l *Ledger) RecordCost(units int) {
	if units < 0 {
		return
	}
	l.sessionUsed += units
	l.cumulativeUsed += units
}

// RecordMethodCost satisfies youtubeapi.CostRecorder.
func (l *Ledger) RecordMethodCost(method string, units int) {
	l.RecordCost(units)
}

// HasBudget reports whether another costed request may proceed. It must be
// consulted before every unit of paid work, not once per batch: a channel
// with thousands of comment pages must not burn through the buffer in one
// uninterrupted burst.
func (l *Ledger) HasBudget() bool {
	return l.cumulativeUsed < l.dailyLimit-l.safetyBuffer
}

// Available returns the remaining spendable units, floored at zero.
func (l *Ledger) Available() int {
	available := l.dailyLimit - l.safetyBuffer - l.cumulativeUsed
	if available < 0 {
		return 0
	}
	return available
}

func (l *Ledger) SessionUsed() int {
	return l.sessionUsed
}

func (l *Ledger) CumulativeUsed() int {
	return l.cumulativeUsed
}

func (l *Ledger) DailyLimit() int {
	return l.dailyLimit
}
