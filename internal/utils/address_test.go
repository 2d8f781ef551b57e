package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBech32Address(t *testing.T) {
	account, err := EncodeBech32Address("terra", bytes.Repeat([]byte{0x11}, 20))
	require.NoError(t, err)
	contract, err := EncodeBech32Address("terra", bytes.Repeat([]byte{0x22}, 32))
	require.NoError(t, err)
	operator, err := EncodeBech32Address("terravaloper", bytes.Repeat([]byte{0x33}, 20))
	require.NoError(t, err)
	short, err := EncodeBech32Address("terra", []byte{0x01, 0x02})
	require.NoError(t, err)

	validate := AddressValidator("terra")
	assert.NoError(t, validate(account))
	assert.NoError(t, validate(contract))
	assert.NoError(t, validate(operator))

	for name, address := range map[string]string{
		"empty":        "",
		"wrong prefix": mustEncode(t, "cosmos", bytes.Repeat([]byte{0x11}, 20)),
		"upper case":   "TERRA" + account[5:],
		"bad checksum": flipLast(account),
		"short":        short,
	} {
		assert.Error(t, validate(address), name)
	}
}

func flipLast(address string) string {
	last := "q"
	if address[len(address)-1] == 'q' {
		last = "p"
	}
	return address[:len(address)-1] + last
}

func mustEncode(t *testing.T, prefix string, payload []byte) string {
	t.Helper()
	address, err := EncodeBech32Address(prefix, payload)
	require.NoError(t, err)
	return address
}
