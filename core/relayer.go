package core

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -source=relayer.go -destination=mock_relayer.go -package=core -exclude_interfaces=RelayerConfig

// RelayKind identifies one of the three relay operations driven by the RelayService
type RelayKind string

const (
	RelayKindValsets RelayKind = "valsets"
	RelayKindBatches RelayKind = "batches"
	RelayKindEvents  RelayKind = "events"
)

// Keys is the signing key material of the orchestrator on both chains
type Keys struct {
	Cosmos   cryptotypes.PrivKey
	Ethereum *ecdsa.PrivateKey
}

// RelayParams is passed by value to every relay operation.
type RelayParams struct {
	CosmosKey       cryptotypes.PrivKey
	EthereumKey     *ecdsa.PrivateKey
	Ethereum        EthereumChain
	Cosmos          CosmosChain
	ContractAddress common.Address
	Fee             sdk.Coin

	// PacingHint is the target loop interval. Relayers may use it to pace their own sub-polling.
	PacingHint time.Duration
}

// ValsetRelayer signs pending validator sets on Cosmos and submits updated sets to the bridge contract.
type ValsetRelayer interface {
	RelayValsets(ctx context.Context, p RelayParams) error
}

// BatchRelayer signs pending transaction batches on Cosmos and submits them to the bridge contract.
type BatchRelayer interface {
	RelayBatches(ctx context.Context, p RelayParams) error
}

// EventRelayer scans the bridge contract from lastCheckedBlock and submits the observed events to Cosmos.
// On success it returns the next block height that has not been scanned yet.
// Implementations must tolerate being called again with a range they already handled.
type EventRelayer interface {
	CheckForEvents(ctx context.Context, p RelayParams, lastCheckedBlock uint64) (uint64, error)
}

// Relayers bundles the three relay operations
type Relayers struct {
	Valsets ValsetRelayer
	Batches BatchRelayer
	Events  EventRelayer
}

// Validate returns an error if any relay operation is missing
func (rs *Relayers) Validate() error {
	if rs == nil {
		return fmt.Errorf("relayers is nil")
	}
	if rs.Valsets == nil {
		return fmt.Errorf("valset relayer is nil")
	}
	if rs.Batches == nil {
		return fmt.Errorf("batch relayer is nil")
	}
	if rs.Events == nil {
		return fmt.Errorf("event relayer is nil")
	}
	return nil
}

// RelayerConfig defines a relayer module configuration and its builder
type RelayerConfig interface {
	Build() (*Relayers, error)
	Validate() error
}

// RelayError is the failure of a single relay invocation
type RelayError struct {
	Kind  RelayKind
	Cause error
}

var _ error = (*RelayError)(nil)

func NewRelayError(kind RelayKind, cause error) *RelayError {
	return &RelayError{Kind: kind, Cause: cause}
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("%s relay failed: %v", e.Kind, e.Cause)
}

func (e *RelayError) Unwrap() error {
	return e.Cause
}
