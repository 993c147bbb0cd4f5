package history

import "time"

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

// Run describes one traversal of a library.
type Run struct {
	ID           string
	LibraryID    int
	LibraryTitle string
	LibraryKind  string
	Mode         string
	Status       RunStatus
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Attempt is one artwork decision made during a run.
type Attempt struct {
	RunID      string
	Kind       string
	Title      string
	Path       string
	Outcome    string
	Detail     string
	RecordedAt time.Time
}

// RunSummary is a run plus its attempt totals.
type RunSummary struct {
	Run
	Downloaded int
	Skipped    int
}
