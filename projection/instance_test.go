package projection

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsim/go-projection/instance"
	"github.com/chainsim/go-projection/types"
)

const testTag = types.InstanceTag("exchange-1")

func reply(t *testing.T, r instance.Reply) *types.InstanceEvent {
	t.Helper()
	data, err := json.Marshal(r)
	require.NoError(t, err)
	return &types.InstanceEvent{Tag: testTag, Msg: &types.HandledResponse{
		RequestID: r.RequestID,
		Response:  data,
	}}
}

func replyDecoder() Decoder[instance.Reply] {
	return JSONDecoder[instance.Reply]()
}

func TestInstanceStateReconstruction(t *testing.T) {
	pending := &types.Tx{Outputs: []types.Output{{
		Address: types.NewWallet(2).Address(),
		Value:   big.NewInt(25),
	}}}
	events := []types.Event{
		&types.InstanceEvent{Tag: testTag, Msg: &types.ContractLog{Message: "starting"}},
		reply(t, instance.Reply{
			RequestID: 1,
			Opens: []instance.Request{{
				ID: 2, Type: "balance-tx", PendingTxs: []*types.Tx{pending},
			}},
		}),
		&types.SlotAdd{Slot: 1},
		reply(t, instance.Reply{RequestID: 2, Done: json.RawMessage(`"settled"`)}),
	}

	state, err := InstanceState(testTag, replyDecoder(), instance.AdvanceReply).
		Run(context.Background(), events)
	require.NoError(t, err)

	assert.Empty(t, state.OpenRequests)
	require.Len(t, state.History, 2)
	assert.Equal(t, uint64(2), state.History[1].Request.ID)
	assert.Equal(t, instance.OutcomeDone, state.Outcome().Type)
	assert.Equal(t, []*types.Tx{pending}, state.EmittedTransactions())
}

func TestInstanceStateSkipsOtherTagsWithoutDecoding(t *testing.T) {
	// The decoder fails on everything, so any decode attempt for the other
	// instance's payload would abort the fold.
	poison := func(json.RawMessage) (instance.Reply, error) {
		return instance.Reply{}, errors.New("must not decode")
	}
	events := []types.Event{
		&types.InstanceEvent{Tag: "other-instance", Msg: &types.HandledResponse{
			RequestID: 1,
			Response:  json.RawMessage(`{"malformed"`),
		}},
		&types.InstanceEvent{Tag: testTag, Msg: &types.ContractLog{Message: "not a response"}},
	}
	state, err := InstanceState(testTag, poison, instance.AdvanceReply).
		Run(context.Background(), events)
	require.NoError(t, err)
	assert.Empty(t, state.History)
}

func TestInstanceStateDecodeFailureAborts(t *testing.T) {
	bad := &types.InstanceEvent{Tag: testTag, Msg: &types.HandledResponse{
		RequestID: 3,
		Response:  json.RawMessage(`{"unexpected":"shape"}`),
	}}
	events := []types.Event{
		reply(t, instance.Reply{RequestID: 1}),
		reply(t, instance.Reply{RequestID: 2}),
		bad,
		reply(t, instance.Reply{RequestID: 4}),
	}

	_, err := InstanceState(testTag, replyDecoder(), instance.AdvanceReply).
		Run(context.Background(), events)
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, testTag, decErr.Tag)
	assert.JSONEq(t, `{"unexpected":"shape"}`, string(decErr.Response))
}

func TestOpenRequests(t *testing.T) {
	events := []types.Event{
		reply(t, instance.Reply{
			RequestID: 1,
			Opens:     []instance.Request{{ID: 2, Type: "await-slot"}},
		}),
	}
	open, err := OpenRequests(testTag, replyDecoder(), instance.AdvanceReply).
		Run(context.Background(), events)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "await-slot", open[0].Type)
}

func TestResponsesProjection(t *testing.T) {
	events := []types.Event{
		reply(t, instance.Reply{RequestID: 1}),
		reply(t, instance.Reply{RequestID: 2}),
	}
	got, err := Responses(testTag, replyDecoder(), instance.AdvanceReply).
		Run(context.Background(), events)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].RequestID)
	assert.Equal(t, uint64(2), got[1].RequestID)
}

func TestFinalOutcome(t *testing.T) {
	notDone, err := FinalOutcome(testTag, replyDecoder(), instance.AdvanceReply).
		Run(context.Background(), []types.Event{reply(t, instance.Reply{RequestID: 1})})
	require.NoError(t, err)
	assert.Equal(t, instance.OutcomeNotDone, notDone.Type)

	failed, err := FinalOutcome(testTag, replyDecoder(), instance.AdvanceReply).
		Run(context.Background(), []types.Event{
			reply(t, instance.Reply{RequestID: 1, Err: "no liquidity"}),
		})
	require.NoError(t, err)
	assert.Equal(t, instance.OutcomeFailed, failed.Type)
	assert.Equal(t, "no liquidity", failed.Err)
}

func TestInstanceLog(t *testing.T) {
	events := []types.Event{
		&types.InstanceEvent{Tag: testTag, Msg: &types.ContractLog{Message: "one"}},
		&types.InstanceEvent{Tag: "other", Msg: &types.ContractLog{Message: "skip"}},
		&types.InstanceEvent{Tag: testTag, Msg: &types.ContractLog{Message: "two"}},
	}
	assert.Equal(t, []string{"one", "two"}, InstanceLog(testTag).Run(events))
}
