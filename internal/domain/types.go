package domain

// Role identifies which side of the conversation produced a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ImageData is a self-contained in-memory image: MIME type plus raw bytes.
// Both acquisition paths (file batch and camera snapshot) normalise to this
// representation so downstream code is agnostic to the source.
type ImageData struct {
	MIME string
	Data []byte
}

// RetrievedImage is a backend-supplied reference image returned as supporting
// evidence for an answer.
type RetrievedImage struct {
	URL     string
	Caption string
}

// Turn is one entry in the chat log. Turns are immutable once appended: the
// log only ever appends, never edits past entries.
//
// User turns carry Text and SubmittedImages; assistant turns carry Points and
// RetrievedImages. The unused fields stay zero.
type Turn struct {
	Role            Role
	Text            string
	Points          []string
	SubmittedImages []ImageData
	RetrievedImages []RetrievedImage
}

// Status tracks the lifecycle of the most recent send. It is a single
// per-session value, not per-turn.
type Status int

const (
	StatusIdle Status = iota
	StatusProcessing
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return "Idle"
	}
}
