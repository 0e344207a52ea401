// projdemo records a scripted simulation into an event log and replays it
// through the standard projections.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/chainsim/go-projection/eventlog"
	"github.com/chainsim/go-projection/instance"
	"github.com/chainsim/go-projection/ledger"
	"github.com/chainsim/go-projection/projection"
	"github.com/chainsim/go-projection/rollup"
	"github.com/chainsim/go-projection/types"
)

var (
	config   = flag.String("config", "", "Config directory")
	scenFile = flag.String("scenario", "", "Scenario yaml file (built-in demo when empty)")
	backend  = flag.String("backend", "", "Event log backend: memory, badger or leveldb")
	dbDir    = flag.String("dbdir", "", "Event log directory for persistent backends")
	tag      = flag.String("tag", "exchange-1", "Contract instance tag to inspect")
	wallets  = flag.Int("wallets", 2, "Number of wallets to report funds for")
)

func main() {
	flag.Parse()
	log.Logger = log.With().Caller().Logger()

	viper.SetDefault("backend", "memory")
	viper.SetDefault("dbdir", "/tmp/chainsim_projdemo/db")
	if *config != "" {
		viper.AddConfigPath(*config)
		viper.SetConfigName("projdemo")
		viper.MergeInConfig()
	}
	if *backend != "" {
		viper.Set("backend", *backend)
	}
	if *dbDir != "" {
		viper.Set("dbdir", *dbDir)
	}

	events, err := scenarioEvents()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scenario")
	}

	store, err := openStore()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open event log")
	}
	defer store.Close()

	for _, ev := range events {
		if err := store.Append(ev); err != nil {
			log.Fatal().Err(err).Msg("failed to append event")
		}
	}

	var replayed []types.Event
	err = store.Replay(func(_ uint64, ev types.Event) error {
		replayed = append(replayed, ev)
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to replay event log")
	}
	report(replayed)
}

func scenarioEvents() ([]types.Event, error) {
	if *scenFile != "" {
		return loadScenario(*scenFile)
	}
	return builtinScenario(), nil
}

func openStore() (eventlog.Store, error) {
	switch viper.GetString("backend") {
	case "memory":
		return eventlog.NewMemoryLog(), nil
	case "badger":
		return eventlog.NewBadgerLog(viper.GetString("dbdir"))
	case "leveldb":
		return eventlog.NewLevelLog(viper.GetString("dbdir"))
	default:
		return nil, fmt.Errorf("unknown backend %q", viper.GetString("backend"))
	}
}

func report(events []types.Event) {
	updater := ledger.StandardUpdater{}

	blocks := projection.Blockchain().Run(events)
	fmt.Printf("blocks: %d\n", len(blocks))
	for i, block := range blocks {
		fmt.Printf("  block %d: %d txs\n", i, len(block))
	}

	annotated := projection.AnnotatedBlockchain[*rollup.State](rollup.Annotator{}).Run(events)
	for _, block := range annotated {
		for _, atx := range block {
			fmt.Printf("  slot %d tx %d: %s\n", atx.SequenceID.Slot, atx.SequenceID.TxIndex, atx.TxID.Hex())
		}
	}

	failed := projection.FailedTransactions().Run(events)
	fmt.Printf("failed validations: %d\n", len(failed))

	for id := 1; id <= *wallets; id++ {
		w := types.NewWallet(types.WalletID(id))
		funds := projection.WalletFunds(w, updater).Run(events)
		watching := projection.WatchingAddress(w.ID, w.Address()).Run(events)
		fmt.Printf("wallet %d: funds=%s watchingOwnAddress=%v\n", id, funds, watching)
	}

	instTag := types.InstanceTag(*tag)
	state, err := projection.InstanceState(
		instTag,
		projection.JSONDecoder[instance.Reply](),
		instance.AdvanceReply,
	).Run(context.Background(), events)
	if err != nil {
		log.Error().Err(err).Str("tag", *tag).Msg("instance state unusable")
	} else {
		outcome := state.Outcome()
		fmt.Printf("instance %s: outcome=%s open=%d responses=%d emitted=%d\n",
			*tag, outcome.Type, len(state.OpenRequests), len(state.History),
			len(state.EmittedTransactions()))
	}

	for _, line := range projection.InstanceLog(instTag).Run(events) {
		fmt.Printf("  %s: %s\n", *tag, line)
	}
	for _, line := range projection.UserLog().Run(events) {
		fmt.Printf("  user: %s\n", line)
	}
}

// builtinScenario is a small end-to-end script: wallet 1 funds wallet 2, an
// exchange instance balances a transaction and finishes.
func builtinScenario() []types.Event {
	w1 := types.NewWallet(1)
	w2 := types.NewWallet(2)

	genesis := &types.Tx{Outputs: []types.Output{{Address: w1.Address(), Value: bigInt(1000)}}}
	payment := &types.Tx{
		Inputs: []types.OutputRef{genesis.OutRef(0)},
		Outputs: []types.Output{
			{Address: w2.Address(), Value: bigInt(400)},
			{Address: w1.Address(), Value: bigInt(600)},
		},
	}
	pending := &types.Tx{Outputs: []types.Output{{Address: w2.Address(), Value: bigInt(25)}}}

	tag := types.InstanceTag("exchange-1")
	return []types.Event{
		&types.UserThreadEvent{Message: "starting demo scenario"},
		&types.AddressStartWatching{Wallet: 1, Address: w1.Address()},
		&types.AddressStartWatching{Wallet: 2, Address: w2.Address()},
		&types.TxnValidate{TxID: genesis.ID(), Tx: genesis},
		&types.SlotAdd{Slot: 1},
		&types.InstanceEvent{Tag: tag, Msg: &types.ContractLog{Message: "awaiting payment"}},
		&types.InstanceEvent{Tag: tag, Msg: &types.HandledResponse{
			RequestID: 1,
			Response: mustJSON(instance.Reply{
				RequestID: 1,
				Opens: []instance.Request{{
					ID:         2,
					Type:       "balance-tx",
					PendingTxs: []*types.Tx{pending},
				}},
			}),
		}},
		&types.TxnValidate{TxID: payment.ID(), Tx: payment},
		&types.SlotAdd{Slot: 2},
		&types.InstanceEvent{Tag: tag, Msg: &types.HandledResponse{
			RequestID: 2,
			Response:  mustJSON(instance.Reply{RequestID: 2, Done: []byte(`"settled"`)}),
		}},
		&types.InstanceEvent{Tag: tag, Msg: &types.Stopped{}},
		&types.SlotAdd{Slot: 3},
		&types.UserThreadEvent{Message: "demo scenario complete"},
	}
}

func mustJSON(v instance.Reply) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode reply")
	}
	return data
}

func bigInt(v int64) *big.Int {
	return big.NewInt(v)
}
