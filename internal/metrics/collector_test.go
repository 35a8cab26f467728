package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTiming(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpLLMReply, 100*time.Millisecond)
	c.RecordTiming(OpLLMReply, 300*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.LLMReply)
	assert.Equal(t, int64(2), snap.LLMReply.Count)
	assert.Equal(t, int64(400), snap.LLMReply.TotalTimeMs)
	assert.Equal(t, int64(100), snap.LLMReply.MinTimeMs)
	assert.Equal(t, int64(300), snap.LLMReply.MaxTimeMs)
	assert.InDelta(t, 200.0, snap.LLMReply.AvgTimeMs, 0.001)
}

func TestSnapshotEmptyOps(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()

	assert.Nil(t, snap.LLMReply)
	assert.Nil(t, snap.Synthesize)
	assert.Nil(t, snap.Transcribe)
	assert.Nil(t, snap.DBQuery)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}

func TestNilCollectorIsNoOp(t *testing.T) {
	var c *Collector
	// Must not panic
	c.RecordTiming(OpDBQuery, time.Second)
}
