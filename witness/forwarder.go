package witness

import (
	"context"
	"fmt"
	"sort"

	"github.com/peggy-bridge/orchestrator/log"
)

// Forwarder hands a decoded event over to whatever attests it on the Cosmos side
type Forwarder interface {
	Forward(ctx context.Context, ev Event) error
}

// LogForwarder only logs the events it receives
type LogForwarder struct{}

var _ Forwarder = LogForwarder{}

func (LogForwarder) Forward(ctx context.Context, ev Event) error {
	args := []any{
		"event", ev.Name,
		"block", ev.BlockNumber,
		"tx_hash", ev.TxHash.Hex(),
		"log_index", ev.LogIndex,
	}
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "field."+k, fmt.Sprint(ev.Fields[k]))
	}
	log.GetLogger().WithModule("witness").InfoContext(ctx, "observed event", args...)
	return nil
}
