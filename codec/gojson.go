package codec

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

var _ Appender = GoJSON{}

// GoJSON is a JSON codec backed by github.com/goccy/go-json.
//
// Its output is interchangeable with JSON; only speed differs.
type GoJSON struct{}

// Marshal encodes the value to JSON.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns the unique name of the codec ("go-json").
func (GoJSON) Name() string { return "go-json" }

// Append encodes the value to JSON and appends it to dst. The encoder
// writes straight into dst's spare capacity, so a caller that passes the
// previous result back as dst[:0] reuses one buffer across values.
func (GoJSON) Append(dst []byte, v any) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := gojson.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates each value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
