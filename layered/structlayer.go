package layered

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// StructLayer exposes the fields of s as a layer. The layer shares s.Fields,
// so writes through a Map land in s and changes to s show through the Map.
func StructLayer(s *structpb.Struct) MapLayer[string, *structpb.Value] {
	if s.Fields == nil {
		s.Fields = make(map[string]*structpb.Value)
	}
	return MapLayer[string, *structpb.Value](s.Fields)
}

// ToStruct flattens the resolved view of m into a new Struct.
func ToStruct(m *Map[string, *structpb.Value]) *structpb.Struct {
	return &structpb.Struct{Fields: m.Snapshot()}
}

// DecodeStruct parses a JSON object into a Struct.
func DecodeStruct(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode struct: %w", err)
	}
	return s, nil
}
