package types

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Slot is a logical chain time step. A new slot begins when the emulator
// appends a SlotAdd event.
type Slot uint64

// WalletID identifies a simulated wallet.
type WalletID uint64

// InstanceTag identifies a contract instance within a simulation run.
type InstanceTag string

type EventType int

const (
	EventTypeChain EventType = iota
	EventTypeChainIndex
	EventTypeInstance
	EventTypeUserThread
)

// Event is the envelope around everything the emulator records. Exactly one
// concrete event type matches each value, so projections select sub-events
// with a single type assertion.
type Event interface {
	GetEventType() EventType
	fmt.Stringer
}

type ChainEventType int

const (
	ChainEventTypeSlotAdd ChainEventType = iota
	ChainEventTypeTxnValidate
	ChainEventTypeTxnValidationFail
)

// ChainEvent is the chain-level subset of the envelope.
type ChainEvent interface {
	Event
	GetChainEventType() ChainEventType
}

// SlotAdd closes the current block and opens the given slot.
type SlotAdd struct {
	Slot Slot `json:"slot"`
}

func (*SlotAdd) GetEventType() EventType { return EventTypeChain }

func (*SlotAdd) GetChainEventType() ChainEventType { return ChainEventTypeSlotAdd }

func (e *SlotAdd) String() string {
	return fmt.Sprintf("SlotAdd %d", e.Slot)
}

// TxnValidate records a transaction accepted into the current block.
type TxnValidate struct {
	TxID common.Hash `json:"txId"`
	Tx   *Tx         `json:"tx"`
}

func (*TxnValidate) GetEventType() EventType { return EventTypeChain }

func (*TxnValidate) GetChainEventType() ChainEventType { return ChainEventTypeTxnValidate }

func (e *TxnValidate) String() string {
	return fmt.Sprintf("TxnValidate %s", e.TxID.Hex())
}

// TxnValidationFail records a transaction rejected by the validator. It is
// observed by projections but never enters a block.
type TxnValidationFail struct {
	TxID   common.Hash `json:"txId"`
	Tx     *Tx         `json:"tx"`
	Reason string      `json:"reason"`
}

func (*TxnValidationFail) GetEventType() EventType { return EventTypeChain }

func (*TxnValidationFail) GetChainEventType() ChainEventType {
	return ChainEventTypeTxnValidationFail
}

func (e *TxnValidationFail) String() string {
	return fmt.Sprintf("TxnValidationFail %s: %s", e.TxID.Hex(), e.Reason)
}

type ChainIndexEventType int

const (
	ChainIndexEventTypeAddressStartWatching ChainIndexEventType = iota
)

// ChainIndexEvent is a wallet-scoped chain index notification.
type ChainIndexEvent interface {
	Event
	GetWallet() WalletID
	GetChainIndexEventType() ChainIndexEventType
}

// AddressStartWatching records that a wallet's chain index began watching an
// address. Watch status never reverts once this has been observed.
type AddressStartWatching struct {
	Wallet  WalletID       `json:"wallet"`
	Address common.Address `json:"address"`
}

func (*AddressStartWatching) GetEventType() EventType { return EventTypeChainIndex }

func (e *AddressStartWatching) GetWallet() WalletID { return e.Wallet }

func (*AddressStartWatching) GetChainIndexEventType() ChainIndexEventType {
	return ChainIndexEventTypeAddressStartWatching
}

func (e *AddressStartWatching) String() string {
	return fmt.Sprintf("W%d: start watching %s", e.Wallet, e.Address.Hex())
}

type InstanceMsgType int

const (
	InstanceMsgTypeHandledResponse InstanceMsgType = iota
	InstanceMsgTypeContractLog
	InstanceMsgTypeStopped
)

// InstanceMsg is the message payload of an InstanceEvent.
type InstanceMsg interface {
	GetInstanceMsgType() InstanceMsgType
	fmt.Stringer
}

// HandledResponse records that the instance consumed a response to one of
// its open requests. The response payload stays untyped until a projection
// decodes it against the instance's declared response shape.
type HandledResponse struct {
	RequestID uint64          `json:"requestId"`
	Response  json.RawMessage `json:"response"`
}

func (*HandledResponse) GetInstanceMsgType() InstanceMsgType { return InstanceMsgTypeHandledResponse }

func (m *HandledResponse) String() string {
	return fmt.Sprintf("handled response to request %d: %s", m.RequestID, m.Response)
}

// ContractLog is a log line emitted by the instance itself.
type ContractLog struct {
	Message string `json:"message"`
}

func (*ContractLog) GetInstanceMsgType() InstanceMsgType { return InstanceMsgTypeContractLog }

func (m *ContractLog) String() string { return m.Message }

// Stopped records instance shutdown. Err is empty for a clean stop.
type Stopped struct {
	Err string `json:"err,omitempty"`
}

func (*Stopped) GetInstanceMsgType() InstanceMsgType { return InstanceMsgTypeStopped }

func (m *Stopped) String() string {
	if m.Err == "" {
		return "stopped"
	}
	return "stopped with error: " + m.Err
}

// InstanceEvent is a contract-instance-scoped event. Projections must check
// the tag before interpreting the message so that events belonging to other
// instances are skipped without touching the payload.
type InstanceEvent struct {
	Tag InstanceTag `json:"tag"`
	Msg InstanceMsg `json:"msg"`
}

func (*InstanceEvent) GetEventType() EventType { return EventTypeInstance }

func (e *InstanceEvent) String() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Msg)
}

// UserThreadEvent is a log message from the thread driving the simulation.
type UserThreadEvent struct {
	Message string `json:"message"`
}

func (*UserThreadEvent) GetEventType() EventType { return EventTypeUserThread }

func (e *UserThreadEvent) String() string {
	return "user: " + e.Message
}
