// Package pb holds the wire message and service definitions for the
// rating service's RPC surface. The real service descriptors are an
// external, fixed IDL (out of scope per §1); this package provides the
// Go-shaped stand-in a generated client/server would produce, including
// a hand-registered grpc.ServiceDesc per service so the handlers in
// package service can be wired onto a real *grpc.Server without a
// protoc step.
package pb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

const codecName = "proto"

// jsonCodec implements encoding.Codec using plain JSON instead of the
// protobuf wire format, so the hand-written messages in this package
// don't need to satisfy proto.Message. Registering it under the name
// "proto" overrides grpc-go's own default codec for this process,
// which is the supported extension point for exactly this situation
// (see google.golang.org/grpc/encoding.RegisterCodec).
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
