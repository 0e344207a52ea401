package instance

import "encoding/json"

type OutcomeType int

const (
	// OutcomeNotDone means the computation is still waiting for input, or
	// terminated without producing a value or an error.
	OutcomeNotDone OutcomeType = iota
	// OutcomeDone means the computation terminated with a final value.
	OutcomeDone
	// OutcomeFailed means the computation terminated with an error.
	OutcomeFailed
)

func (t OutcomeType) String() string {
	switch t {
	case OutcomeDone:
		return "Done"
	case OutcomeFailed:
		return "Failed"
	default:
		return "NotDone"
	}
}

// Outcome is the classified final state of an instance.
type Outcome struct {
	Type  OutcomeType
	Value json.RawMessage // set for Done
	Err   string          // set for Failed
}

// Outcome classifies the instance status. A terminated-with-error state is
// Failed regardless of any value; terminated with a value is Done;
// everything else, including terminated with neither, is NotDone. Open
// requests play no part in the classification.
func (s *State[T]) Outcome() Outcome {
	switch {
	case s.Status.Terminated && s.Status.Err != "":
		return Outcome{Type: OutcomeFailed, Err: s.Status.Err}
	case s.Status.Terminated && len(s.Status.Value) > 0:
		return Outcome{Type: OutcomeDone, Value: s.Status.Value}
	default:
		return Outcome{Type: OutcomeNotDone}
	}
}
