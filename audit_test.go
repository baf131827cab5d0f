package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryAuditSink_RecordsLifecycleTransitions(t *testing.T) {
	sink := NewMemoryAuditSink()
	e := NewEngine(16, WithAuditSink(sink))

	_, err := e.SubmitLimit(1, Buy, 10000, 50)
	assert.NoError(t, err)
	_, err = e.SubmitLimit(2, Sell, 10000, 20)
	assert.NoError(t, err)
	assert.True(t, e.Cancel(1))

	events := sink.Events()
	assert.Len(t, events, 3)
	assert.Equal(t, AuditOpen, events[0].Kind)
	assert.Equal(t, AuditMatched, events[1].Kind)
	assert.Equal(t, AuditCancelled, events[2].Kind)

	sink.Close()
	assert.Empty(t, sink.Events())
}

func TestMemoryAuditSink_GroupsEventsFromOneSubmissionByCorrelationID(t *testing.T) {
	sink := NewMemoryAuditSink()
	e := NewEngine(16, WithAuditSink(sink))

	_, err := e.SubmitLimit(1, Sell, 10000, 20)
	assert.NoError(t, err)
	_, err = e.SubmitLimit(2, Sell, 10000, 30)
	assert.NoError(t, err)

	// One incoming buy crosses both resting sells: two Matched events from
	// a single submission must share a CorrelationID, distinct from the two
	// earlier Open events' ids.
	_, err = e.SubmitLimit(3, Buy, 10000, 50)
	assert.NoError(t, err)

	events := sink.Events()
	assert.Len(t, events, 4)
	assert.NotEqual(t, events[0].CorrelationID, events[1].CorrelationID)
	assert.Equal(t, AuditMatched, events[2].Kind)
	assert.Equal(t, AuditMatched, events[3].Kind)
	assert.Equal(t, events[2].CorrelationID, events[3].CorrelationID)
	assert.NotEqual(t, events[0].CorrelationID, events[2].CorrelationID)
}

func TestMemoryAuditSink_DiscardOnMarketResidual(t *testing.T) {
	sink := NewMemoryAuditSink()
	e := NewEngine(16, WithAuditSink(sink))

	_, err := e.SubmitMarket(1, Buy, 10)
	assert.NoError(t, err)

	events := sink.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, AuditDiscarded, events[0].Kind)
}
