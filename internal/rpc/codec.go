// Package rpc defines the Connect procedures, messages and handler/client
// constructors for the splitbill API.
//
// Messages are plain Go structs carried as JSON, so both sides must use
// Codec (the constructors here add it automatically).
package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName replaces Connect's protobuf-backed JSON codec.
const codecName = "json"

type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string {
	return codecName
}

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// Codec returns the Connect option that installs the JSON codec.
func Codec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
