package hub

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

// jsonValue stores values the way contract storage does: as plain JSON
// documents, so the persisted state is readable by off-chain indexers.
type jsonValue[T any] struct {
	name string
}

func JSONValue[T any](name string) collcodec.ValueCodec[T] {
	return jsonValue[T]{name: name}
}

func (c jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonValue[T]) Decode(b []byte) (T, error) {
	var value T
	if err := json.Unmarshal(b, &value); err != nil {
		return value, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return value, nil
}

func (c jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValue[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c jsonValue[T]) Stringify(value T) string {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

func (c jsonValue[T]) ValueType() string {
	return "json/" + c.name
}
