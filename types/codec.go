package types

import (
	"encoding/json"
	"fmt"
)

// Event and InstanceMsg are interface unions, so persisting them needs a
// kind-tagged wrapper. The registry below maps wire kinds to factories,
// one entry per concrete event type.

type wireEvent struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

const (
	kindSlotAdd              = "slot_add"
	kindTxnValidate          = "txn_validate"
	kindTxnValidationFail    = "txn_validation_fail"
	kindAddressStartWatching = "address_start_watching"
	kindInstanceEvent        = "instance"
	kindUserThreadEvent      = "user_thread"

	msgKindHandledResponse = "handled_response"
	msgKindContractLog     = "contract_log"
	msgKindStopped         = "stopped"
)

var eventRegistry = map[string]func() Event{
	kindSlotAdd:              func() Event { return &SlotAdd{} },
	kindTxnValidate:          func() Event { return &TxnValidate{} },
	kindTxnValidationFail:    func() Event { return &TxnValidationFail{} },
	kindAddressStartWatching: func() Event { return &AddressStartWatching{} },
	kindInstanceEvent:        func() Event { return &InstanceEvent{} },
	kindUserThreadEvent:      func() Event { return &UserThreadEvent{} },
}

var msgRegistry = map[string]func() InstanceMsg{
	msgKindHandledResponse: func() InstanceMsg { return &HandledResponse{} },
	msgKindContractLog:     func() InstanceMsg { return &ContractLog{} },
	msgKindStopped:         func() InstanceMsg { return &Stopped{} },
}

func eventKind(ev Event) (string, error) {
	switch ev.(type) {
	case *SlotAdd:
		return kindSlotAdd, nil
	case *TxnValidate:
		return kindTxnValidate, nil
	case *TxnValidationFail:
		return kindTxnValidationFail, nil
	case *AddressStartWatching:
		return kindAddressStartWatching, nil
	case *InstanceEvent:
		return kindInstanceEvent, nil
	case *UserThreadEvent:
		return kindUserThreadEvent, nil
	default:
		return "", fmt.Errorf("unregistered event type %T", ev)
	}
}

func msgKind(m InstanceMsg) (string, error) {
	switch m.(type) {
	case *HandledResponse:
		return msgKindHandledResponse, nil
	case *ContractLog:
		return msgKindContractLog, nil
	case *Stopped:
		return msgKindStopped, nil
	default:
		return "", fmt.Errorf("unregistered instance message type %T", m)
	}
}

// EncodeEvent serializes an event for storage.
func EncodeEvent(ev Event) ([]byte, error) {
	kind, err := eventKind(ev)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&wireEvent{Kind: kind, Data: data})
}

// DecodeEvent is the inverse of EncodeEvent.
func DecodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding event envelope: %w", err)
	}
	factory, ok := eventRegistry[w.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown event kind %q", w.Kind)
	}
	ev := factory()
	if err := json.Unmarshal(w.Data, ev); err != nil {
		return nil, fmt.Errorf("decoding %q event: %w", w.Kind, err)
	}
	return ev, nil
}

type wireInstanceEvent struct {
	Tag InstanceTag `json:"tag"`
	Msg wireEvent   `json:"msg"`
}

func (e *InstanceEvent) MarshalJSON() ([]byte, error) {
	kind, err := msgKind(e.Msg)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(e.Msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&wireInstanceEvent{
		Tag: e.Tag,
		Msg: wireEvent{Kind: kind, Data: data},
	})
}

func (e *InstanceEvent) UnmarshalJSON(data []byte) error {
	var w wireInstanceEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	factory, ok := msgRegistry[w.Msg.Kind]
	if !ok {
		return fmt.Errorf("unknown instance message kind %q", w.Msg.Kind)
	}
	msg := factory()
	if err := json.Unmarshal(w.Msg.Data, msg); err != nil {
		return fmt.Errorf("decoding %q message: %w", w.Msg.Kind, err)
	}
	e.Tag = w.Tag
	e.Msg = msg
	return nil
}
