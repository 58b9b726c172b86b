package queue

type TaskType string

const (
	// TaskTypeMatchRefresh regenerates matches for a member after their intent changed.
	TaskTypeMatchRefresh TaskType = "match_refresh"
)

// Task is a unit of background work published to the stream.
type Task struct {
	TaskType TaskType
	MemberID int64
	IntentID *int64
	Reason   string // what triggered the task, e.g. "intent_updated"
	TraceID  *string
	Attempt  int
}
