package instance

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsim/go-projection/types"
)

func TestOutcomeClassification(t *testing.T) {
	cases := []struct {
		name   string
		status Status
		want   OutcomeType
	}{
		{"not started", Status{}, OutcomeNotDone},
		{"terminated, no error, no value", Status{Terminated: true}, OutcomeNotDone},
		{"terminated with value", Status{Terminated: true, Value: json.RawMessage(`42`)}, OutcomeDone},
		{"terminated with error", Status{Terminated: true, Err: "broke"}, OutcomeFailed},
		{"error wins over value", Status{Terminated: true, Err: "broke", Value: json.RawMessage(`42`)}, OutcomeFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &State[Reply]{Status: tc.status}
			// Open requests play no part in the classification.
			s.OpenRequests = []Request{{ID: 9}}
			assert.Equal(t, tc.want, s.Outcome().Type)
		})
	}
}

func TestAdvanceReplyClosesAndOpensRequests(t *testing.T) {
	prior := &State[Reply]{
		OpenRequests: []Request{{ID: 1, Type: "await-payment"}, {ID: 2, Type: "await-slot"}},
	}
	next := AdvanceReply(prior, Reply{
		RequestID: 1,
		Opens:     []Request{{ID: 3, Type: "balance-tx"}},
	})

	require.Len(t, next.OpenRequests, 2)
	assert.Equal(t, uint64(2), next.OpenRequests[0].ID)
	assert.Equal(t, uint64(3), next.OpenRequests[1].ID)

	require.Len(t, next.History, 1)
	assert.Equal(t, uint64(1), next.History[0].Request.ID)
	assert.Equal(t, "await-payment", next.History[0].Request.Type)
	assert.False(t, next.Status.Terminated)
}

func TestAdvanceReplyTerminal(t *testing.T) {
	done := AdvanceReply(NewState[Reply](), Reply{RequestID: 1, Done: json.RawMessage(`"ok"`)})
	assert.Equal(t, OutcomeDone, done.Outcome().Type)

	failed := AdvanceReply(NewState[Reply](), Reply{RequestID: 1, Err: "no liquidity"})
	assert.Equal(t, OutcomeFailed, failed.Outcome().Type)
	assert.Equal(t, "no liquidity", failed.Outcome().Err)
}

func TestEmittedTransactionsFlattens(t *testing.T) {
	tx1 := &types.Tx{Outputs: []types.Output{{Address: types.NewWallet(1).Address(), Value: big.NewInt(1)}}}
	tx2 := &types.Tx{Outputs: []types.Output{{Address: types.NewWallet(1).Address(), Value: big.NewInt(2)}}}
	tx3 := &types.Tx{Outputs: []types.Output{{Address: types.NewWallet(1).Address(), Value: big.NewInt(3)}}}

	s := &State[Reply]{
		History: []Exchange[Reply]{
			{Request: Request{ID: 1, PendingTxs: []*types.Tx{tx1, tx2}}},
			{Request: Request{ID: 2}},
		},
		OpenRequests: []Request{{ID: 3, PendingTxs: []*types.Tx{tx3}}},
	}
	assert.Equal(t, []*types.Tx{tx1, tx2, tx3}, s.EmittedTransactions())
}

func TestResponses(t *testing.T) {
	s := &State[Reply]{
		History: []Exchange[Reply]{
			{Response: Reply{RequestID: 1}},
			{Response: Reply{RequestID: 2}},
		},
	}
	got := s.Responses()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].RequestID)
	assert.Equal(t, uint64(2), got[1].RequestID)
}
