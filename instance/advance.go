package instance

import "encoding/json"

// Reply is the decoded response shape the reference advancer understands: it
// names the request it answers and optionally opens follow-up requests or
// terminates the computation.
type Reply struct {
	RequestID uint64          `json:"requestId"`
	Opens     []Request       `json:"opens,omitempty"`
	Done      json.RawMessage `json:"done,omitempty"`
	Err       string          `json:"err,omitempty"`
}

// AdvanceReply is a reference state transition over Reply responses. It
// closes the answered open request (if still open), records the exchange,
// opens any follow-up requests and applies a terminal outcome. It never
// fails: decode errors are caught before the advancer runs.
func AdvanceReply(prior *State[Reply], resp Reply) *State[Reply] {
	next := &State[Reply]{
		Status:       prior.Status,
		OpenRequests: make([]Request, 0, len(prior.OpenRequests)),
		History:      prior.History,
	}

	answered := Request{ID: resp.RequestID}
	for _, req := range prior.OpenRequests {
		if req.ID == resp.RequestID {
			answered = req
			continue
		}
		next.OpenRequests = append(next.OpenRequests, req)
	}
	next.History = append(next.History, Exchange[Reply]{Request: answered, Response: resp})
	next.OpenRequests = append(next.OpenRequests, resp.Opens...)

	switch {
	case resp.Err != "":
		next.Status = Status{Terminated: true, Err: resp.Err}
	case len(resp.Done) > 0:
		next.Status = Status{Terminated: true, Value: resp.Done}
	}
	return next
}
