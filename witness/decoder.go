package witness

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Event is a decoded contract log
type Event struct {
	Name        string
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
	Fields      map[string]any
}

// Decoder decodes the logs of a single event of a contract ABI
type Decoder struct {
	event abi.Event
}

// NewDecoder reads a JSON ABI from r and selects the event called name
func NewDecoder(r io.Reader, name string) (*Decoder, error) {
	parsed, err := abi.JSON(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi: %w", err)
	}
	ev, ok := parsed.Events[name]
	if !ok {
		return nil, fmt.Errorf("event %q not found in abi", name)
	}
	return &Decoder{event: ev}, nil
}

// EventName returns the name of the decoded event
func (d *Decoder) EventName() string {
	return d.event.Name
}

// Topic returns the signature hash that identifies the event in topic 0
func (d *Decoder) Topic() common.Hash {
	return d.event.ID
}

// Decode unpacks both the indexed and the non-indexed arguments of l
func (d *Decoder) Decode(l gethtypes.Log) (Event, error) {
	if len(l.Topics) == 0 || l.Topics[0] != d.event.ID {
		return Event{}, fmt.Errorf("log %s:%d is not a %s event", l.TxHash, l.Index, d.event.Name)
	}

	fields := make(map[string]any)
	if err := d.event.Inputs.NonIndexed().UnpackIntoMap(fields, l.Data); err != nil {
		return Event{}, fmt.Errorf("failed to unpack data of %s: %w", d.event.Name, err)
	}
	var indexed abi.Arguments
	for _, arg := range d.event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, l.Topics[1:]); err != nil {
		return Event{}, fmt.Errorf("failed to unpack topics of %s: %w", d.event.Name, err)
	}

	return Event{
		Name:        d.event.Name,
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
		LogIndex:    l.Index,
		Fields:      fields,
	}, nil
}
