package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/chainsim/go-projection/types"
)

// A scenario file is a yaml script of emulator events. Transaction inputs
// reference earlier scenario transactions by ordinal, so scripts stay
// readable while transaction IDs stay derived.
type scenario struct {
	Events []scenarioEvent `yaml:"events"`
}

type scenarioEvent struct {
	Kind string `yaml:"kind"`

	// slot_add
	Slot uint64 `yaml:"slot,omitempty"`

	// txn_validate / txn_validation_fail
	Inputs  []scenarioInput  `yaml:"inputs,omitempty"`
	Outputs []scenarioOutput `yaml:"outputs,omitempty"`
	Reason  string           `yaml:"reason,omitempty"`

	// address_start_watching: wallet starts watching watch's address
	Wallet uint64 `yaml:"wallet,omitempty"`
	Watch  uint64 `yaml:"watch,omitempty"`

	// instance
	Tag       string `yaml:"tag,omitempty"`
	Msg       string `yaml:"msg,omitempty"`
	RequestID uint64 `yaml:"request_id,omitempty"`
	Response  string `yaml:"response,omitempty"`
	Err       string `yaml:"err,omitempty"`

	// instance contract_log / user
	Message string `yaml:"message,omitempty"`
}

type scenarioInput struct {
	Tx    int    `yaml:"tx"` // ordinal of an earlier txn_validate event
	Index uint32 `yaml:"index"`
}

type scenarioOutput struct {
	Wallet uint64 `yaml:"wallet"`
	Value  int64  `yaml:"value"`
}

func loadScenario(path string) ([]types.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %q: %w", path, err)
	}
	return sc.build()
}

func (sc *scenario) build() ([]types.Event, error) {
	var events []types.Event
	var txs []*types.Tx
	for i, se := range sc.Events {
		switch se.Kind {
		case "slot_add":
			events = append(events, &types.SlotAdd{Slot: types.Slot(se.Slot)})
		case "txn_validate", "txn_validation_fail":
			tx, err := se.buildTx(txs)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
			if se.Kind == "txn_validate" {
				events = append(events, &types.TxnValidate{TxID: tx.ID(), Tx: tx})
				txs = append(txs, tx)
			} else {
				events = append(events, &types.TxnValidationFail{TxID: tx.ID(), Tx: tx, Reason: se.Reason})
			}
		case "address_start_watching":
			events = append(events, &types.AddressStartWatching{
				Wallet:  types.WalletID(se.Wallet),
				Address: types.NewWallet(types.WalletID(se.Watch)).Address(),
			})
		case "instance":
			msg, err := se.buildMsg()
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
			events = append(events, &types.InstanceEvent{Tag: types.InstanceTag(se.Tag), Msg: msg})
		case "user":
			events = append(events, &types.UserThreadEvent{Message: se.Message})
		default:
			return nil, fmt.Errorf("event %d: unknown kind %q", i, se.Kind)
		}
	}
	return events, nil
}

func (se *scenarioEvent) buildTx(prior []*types.Tx) (*types.Tx, error) {
	tx := &types.Tx{}
	for _, in := range se.Inputs {
		if in.Tx < 0 || in.Tx >= len(prior) {
			return nil, fmt.Errorf("input references unknown transaction %d", in.Tx)
		}
		tx.Inputs = append(tx.Inputs, prior[in.Tx].OutRef(int(in.Index)))
	}
	for _, out := range se.Outputs {
		tx.Outputs = append(tx.Outputs, types.Output{
			Address: types.NewWallet(types.WalletID(out.Wallet)).Address(),
			Value:   bigInt(out.Value),
		})
	}
	return tx, nil
}

func (se *scenarioEvent) buildMsg() (types.InstanceMsg, error) {
	switch se.Msg {
	case "handled_response":
		if !json.Valid([]byte(se.Response)) {
			return nil, fmt.Errorf("response is not valid JSON: %s", se.Response)
		}
		return &types.HandledResponse{
			RequestID: se.RequestID,
			Response:  json.RawMessage(se.Response),
		}, nil
	case "contract_log":
		return &types.ContractLog{Message: se.Message}, nil
	case "stopped":
		return &types.Stopped{Err: se.Err}, nil
	default:
		return nil, fmt.Errorf("unknown instance message kind %q", se.Msg)
	}
}
