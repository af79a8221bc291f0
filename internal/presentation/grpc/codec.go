package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// The stand-in wire messages are plain structs, so requests travel over a
// JSON codec instead of protobuf. Clients select it with
// grpc.CallContentSubtype("json").
func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}
