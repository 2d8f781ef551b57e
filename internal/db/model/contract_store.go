package model

import "encoding/hex"

const ContractStoreCollection = "contract_store"

// ContractStoreDocument is one entry of the hub's key-value store. Keys are
// hex encoded so that the string order of _id is the byte order of the key.
type ContractStoreDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

func EncodeStoreKey(key []byte) string {
	return hex.EncodeToString(key)
}

func DecodeStoreKey(id string) ([]byte, error) {
	return hex.DecodeString(id)
}
