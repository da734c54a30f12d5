package agent

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAppendAndTail(t *testing.T) {
	tr := NewTranscript()
	for i := 0; i < 5; i++ {
		tr.Append(Record{ID: strconv.Itoa(i)})
	}
	assert.Equal(t, 5, tr.Len())

	tail := tr.Tail(2)
	require.Len(t, tail, 2)
	assert.Equal(t, "3", tail[0].ID)
	assert.Equal(t, "4", tail[1].ID)

	all := tr.Tail(0)
	assert.Len(t, all, 5)
	assert.Equal(t, "0", all[0].ID)
}

func TestTranscriptBounded(t *testing.T) {
	tr := NewTranscript()
	for i := 0; i < maxTranscriptRecords+7; i++ {
		tr.Append(Record{ID: strconv.Itoa(i)})
	}
	assert.Equal(t, maxTranscriptRecords, tr.Len())
	// Oldest entries were evicted.
	assert.Equal(t, "7", tr.Tail(0)[0].ID)
}

func TestTranscriptMarkExecuted(t *testing.T) {
	tr := NewTranscript()
	tr.Append(Record{ID: "a"})
	tr.Append(Record{ID: "b"})

	tr.markExecuted("a")
	records := tr.Tail(0)
	assert.True(t, records[0].Executed)
	assert.False(t, records[1].Executed)

	// Unknown ids are a no-op.
	tr.markExecuted("zzz")
	assert.Equal(t, 2, tr.Len())
}

func TestTranscriptClear(t *testing.T) {
	tr := NewTranscript()
	tr.Append(Record{ID: "x"})
	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Tail(0))
}
