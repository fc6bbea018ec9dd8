package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordCostIsMonotonic(t *testing.T) {
	ledger := NewLedger(10000, 500)
	ledger.Seed(120)

	costs := []int{1, 1, 100, 0, 50, 1}
	total := 0
	previous := ledger.CumulativeUsed()
	for _, c := range costs {
		ledger.RecordCost(c)
		total += c
		assert.GreaterOrEqual(t, ledger.CumulativeUsed(), previous)
		previous = ledger.CumulativeUsed()
	}

	assert.Equal(t, 120+total, ledger.CumulativeUsed())
	assert.Equal(t, total, ledger.SessionUsed())
}

func TestRecordCostIgnoresNegativeUnits(t *testing.T) {
	ledger := NewLedger(1000, 0)
	ledger.RecordCost(10)
	ledger.RecordCost(-5)
	assert.Equal(t, 10, ledger.CumulativeUsed())
	assert.Equal(t, 10, ledger.SessionUsed())
}

func TestSeedDoesNotAffectSession(t *testing.T) {
	ledger := NewLedger(1000, 0)
	ledger.Seed(400)
	assert.Equal(t, 0, ledger.SessionUsed())
	assert.Equal(t, 400, ledger.CumulativeUsed())
}

func TestHasBudgetGate(t *testing.T) {
	// daily=1000 buffer=100: the gate closes exactly at cumulative 900.
	ledger := NewLedger(1000, 100)
	ledger.Seed(899)
	assert.True(t, ledger.HasBudget())

	ledger.RecordCost(1)
	assert.False(t, ledger.HasBudget())

	ledger.RecordCost(50)
	assert.False(t, ledger.HasBudget())
}

func TestAvailableFloorsAtZero(t *testing.T) {
	ledger := NewLedger(1000, 100)
	ledger.Seed(950)
	assert.Equal(t, 0, ledger.Available())

	fresh := NewLedger(1000, 100)
	fresh.Seed(200)
	assert.Equal(t, 700, fresh.Available())
}

func TestCostTable(t *testing.T) {
	assert.Equal(t, 1, Cost(MethodChannelsList))
	assert.Equal(t, 1, Cost(MethodPlaylistItemsList))
	assert.Equal(t, 1, Cost(MethodVideosList))
	assert.Equal(t, 1, Cost(MethodCommentThreadsList))
	assert.Equal(t, 100, Cost(MethodSearchList))
	assert.Equal(t, 50, Cost(MethodCaptionsList))
	assert.Equal(t, 1, Cost("no.such.method"))
}

func TestRecordMethodCostChargesLedger(t *testing.T) {
	ledger := NewLedger(1000, 0)
	ledger.RecordMethodCost(MethodSearchList, Cost(MethodSearchList))
	assert.Equal(t, 100, ledger.SessionUsed())
}
