package agent

import (
	"sync"
	"time"
)

// maxTranscriptRecords bounds the in-memory history; oldest entries are
// evicted first.
const maxTranscriptRecords = 1000

// Record is one entry in the step transcript: what was seen, what the model
// said, and what was done about it.
type Record struct {
	ID          string
	At          time.Time
	Observation string
	Decision    string
	Action      string
	Executed    bool
	Source      string // "step", "ocr"
}

// Transcript is a bounded in-memory history of agent activity. It is never
// persisted; a fresh process starts empty. The mutex exists only because a
// live view may read while the loop appends.
type Transcript struct {
	mu      sync.Mutex
	records []Record
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a record, evicting the oldest entries past the bound.
func (t *Transcript) Append(r Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, r)
	if overflow := len(t.records) - maxTranscriptRecords; overflow > 0 {
		t.records = append(t.records[:0:0], t.records[overflow:]...)
	}
}

// Tail returns the most recent n records, oldest first. A non-positive n
// returns everything.
func (t *Transcript) Tail(n int) []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	start := 0
	if n > 0 && n < len(t.records) {
		start = len(t.records) - n
	}
	out := make([]Record, len(t.records)-start)
	copy(out, t.records[start:])
	return out
}

// Len reports the current record count.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// markExecuted flags the record with the given id. Scans from the newest
// entry since the target is almost always the last one appended.
func (t *Transcript) markExecuted(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.records) - 1; i >= 0; i-- {
		if t.records[i].ID == id {
			t.records[i].Executed = true
			return
		}
	}
}

// Clear drops all records.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = nil
}
