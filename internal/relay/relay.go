package relay

// Kind discriminates the typed messages a run emits toward its
// frontend.
type Kind int

const (
	KindText Kind = iota
	KindProgress
	KindStatus
	KindError
	KindSuccess
	KindEnableTrigger
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindProgress:
		return "progress"
	case KindStatus:
		return "status"
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	case KindEnableTrigger:
		return "enable-trigger"
	default:
		return "unknown"
	}
}

// Message is one unit on the worker-to-frontend queue. Text carries
// the payload for text/status/error/success kinds, Progress the value
// for progress kind.
type Message struct {
	Kind     Kind
	Text     string
	Progress int // 0-100
}

// Sink receives messages from the worker. Implementations must be
// safe to call from a goroutine other than the one draining.
type Sink interface {
	Notify(msg Message)
}

func Text(s string) Message { return Message{Kind: KindText, Text: s} }

func Progress(v int) Message { return Message{Kind: KindProgress, Progress: v} }

func Status(s string) Message { return Message{Kind: KindStatus, Text: s} }

func Error(s string) Message { return Message{Kind: KindError, Text: s} }

func Success(s string) Message { return Message{Kind: KindSuccess, Text: s} }

func EnableTrigger() Message { return Message{Kind: KindEnableTrigger} }
