package tendermint

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/go-bip39"
)

// PrivKey resolves the signing key from the configured mnemonic, mnemonic file or hex key
func (c ChainConfig) PrivKey() (cryptotypes.PrivKey, error) {
	switch {
	case c.Mnemonic != "":
		return PrivKeyFromMnemonic(c.Mnemonic, c.HDPath)
	case c.MnemonicFile != "":
		bz, err := os.ReadFile(c.MnemonicFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load mnemonic: %w", err)
		}
		return PrivKeyFromMnemonic(string(bz), c.HDPath)
	case c.PrivateKey != "":
		return PrivKeyFromHex(c.PrivateKey)
	default:
		return nil, fmt.Errorf("cosmos key not supplied")
	}
}

// PrivKeyFromMnemonic derives a secp256k1 key along hdPath, defaulting to the Cosmos Hub path
func PrivKeyFromMnemonic(mnemonic, hdPath string) (cryptotypes.PrivKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	if hdPath == "" {
		hdPath = sdk.FullFundraiserPath
	}
	derived, err := hd.Secp256k1.Derive()(mnemonic, "", hdPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key at %s: %w", hdPath, err)
	}
	return hd.Secp256k1.Generate()(derived), nil
}

// PrivKeyFromHex parses a hex encoded 32 byte secp256k1 key
func PrivKeyFromHex(s string) (cryptotypes.PrivKey, error) {
	bz, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	if len(bz) != secp256k1.PrivKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(bz))
	}
	return &secp256k1.PrivKey{Key: bz}, nil
}

// Address returns the bech32 account address of key
func Address(prefix string, key cryptotypes.PrivKey) (string, error) {
	return sdk.Bech32ifyAddressBytes(prefix, key.PubKey().Address())
}

// CreateMnemonic creates a new mnemonic
func CreateMnemonic() (string, error) {
	entropySeed, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	mnemonic, err := bip39.NewMnemonic(entropySeed)
	if err != nil {
		return "", err
	}
	return mnemonic, nil
}
