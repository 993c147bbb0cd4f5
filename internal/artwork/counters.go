package artwork

// Outcome is the result of a single artwork attempt.
type Outcome string

const (
	// OutcomeNone means nothing was attempted, usually because the server has no image.
	OutcomeNone Outcome = "none"
	// OutcomeSkipped covers existing files in skip mode and failed transfers.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeDownloaded means a file was written.
	OutcomeDownloaded Outcome = "downloaded"
)

// Tally is the per-kind count of downloads and skips.
type Tally struct {
	Downloaded int
	Skipped    int
}

// Counters accumulates outcomes for one run. Counts only grow. Counters are
// owned by the traversal goroutine and are not safe for concurrent use.
type Counters struct {
	tallies map[Kind]Tally
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{tallies: make(map[Kind]Tally, len(Kinds))}
}

// Increment records outcome for kind. OutcomeNone is ignored.
func (c *Counters) Increment(outcome Outcome, kind Kind) {
	if c.tallies == nil {
		c.tallies = make(map[Kind]Tally, len(Kinds))
	}
	t := c.tallies[kind]
	switch outcome {
	case OutcomeDownloaded:
		t.Downloaded++
	case OutcomeSkipped:
		t.Skipped++
	default:
		return
	}
	c.tallies[kind] = t
}

// Get returns the tally for kind.
func (c *Counters) Get(kind Kind) Tally {
	return c.tallies[kind]
}

// Snapshot returns a copy of every tally.
func (c *Counters) Snapshot() map[Kind]Tally {
	out := make(map[Kind]Tally, len(Kinds))
	for _, kind := range Kinds {
		out[kind] = c.tallies[kind]
	}
	return out
}
