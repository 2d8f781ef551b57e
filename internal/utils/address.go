package utils

import (
	"fmt"
	"strings"

	"github.com/cosmos/btcutil/bech32"
)

// bech32MaxLength is the length limit used by the Cosmos SDK, longer than the
// BIP-173 limit so that contract addresses fit.
const bech32MaxLength = 1023

// ValidateBech32Address checks that address is a bech32 string with the
// expected human readable prefix and a 20 or 32 byte payload.
func ValidateBech32Address(address, prefix string) error {
	if address == "" {
		return fmt.Errorf("empty address")
	}
	if strings.ToLower(address) != address {
		return fmt.Errorf("address %s must be lower case", address)
	}
	hrp, data, err := bech32.Decode(address, bech32MaxLength)
	if err != nil {
		return fmt.Errorf("invalid bech32 address %s: %w", address, err)
	}
	if hrp != prefix {
		return fmt.Errorf("address %s has prefix %s, expected %s", address, hrp, prefix)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("invalid bech32 payload in %s: %w", address, err)
	}
	if len(payload) != 20 && len(payload) != 32 {
		return fmt.Errorf("address %s has a %d byte payload", address, len(payload))
	}
	return nil
}

// AddressValidator returns a validator accepting addresses with prefix or the
// matching validator operator prefix.
func AddressValidator(prefix string) func(string) error {
	return func(address string) error {
		if strings.HasPrefix(address, prefix+"valoper1") {
			return ValidateBech32Address(address, prefix+"valoper")
		}
		return ValidateBech32Address(address, prefix)
	}
}

// EncodeBech32Address encodes payload under prefix.
func EncodeBech32Address(prefix string, payload []byte) (string, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(prefix, data)
}
