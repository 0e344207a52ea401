package projection

import (
	"github.com/chainsim/go-projection/fold"
	"github.com/chainsim/go-projection/types"
)

// UserLog collects the messages logged by the thread driving the
// simulation, in order.
func UserLog() fold.Fold[types.Event, []string] {
	return fold.FilterMap(userMsg, fold.Collect[string]())
}

// EmulatorLog renders the whole event stream, one line per event.
func EmulatorLog() fold.Fold[types.Event, string] {
	return RenderLines[types.Event]()
}
