package core

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultFeeAmount is the amount paid for every Cosmos transaction caused by the relay loop
const DefaultFeeAmount uint64 = 1

// FeePolicy describes the fee attached to every Cosmos-side transaction the relay loop causes.
// It is fixed at construction and never mutated.
type FeePolicy struct {
	coin sdk.Coin
}

// NewFeePolicy validates the denomination and amount and returns an immutable fee policy
func NewFeePolicy(denom string, amount uint64) (*FeePolicy, error) {
	if amount == 0 {
		return nil, fmt.Errorf("fee amount must be positive: denom=%q", denom)
	}
	coin := sdk.Coin{Denom: denom, Amount: sdkmath.NewIntFromUint64(amount)}
	if err := coin.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fee %q: %w", denom, err)
	}
	return &FeePolicy{coin: coin}, nil
}

// Current returns a copy of the configured fee
func (f *FeePolicy) Current() sdk.Coin {
	return sdk.Coin{Denom: f.coin.Denom, Amount: sdkmath.NewIntFromBigInt(f.coin.Amount.BigInt())}
}

func (f *FeePolicy) String() string {
	return f.coin.String()
}
