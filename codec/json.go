package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It works for typical structs/maps/slices. Channels, funcs and complex
// numbers are not supported. Implement Codec for custom encodings.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for new snapshots unless one is configured.
//
// Changing it only affects snapshots written afterwards; existing snapshots
// name their codec in the header.
var Default Codec = GoJSON{}
