// Package api defines the messages of the kasir.v1 RPC services.
//
// The services speak the Connect protocol with a JSON codec over plain Go
// structs, so any HTTP client can call them with a POST of a JSON body.
package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec is a connect.Codec that marshals plain structs with
// encoding/json. It is registered under "json" and replaces Connect's
// protojson codec, which only accepts proto messages.
type JSONCodec struct{}

func (JSONCodec) Name() string {
	return "json"
}

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return b, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
