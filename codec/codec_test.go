package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attr struct {
	Label  string   `json:"label"`
	Weight float64  `json:"weight"`
	Tags   []string `json:"tags"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsInterchangeable(t *testing.T) {
	in := attr{Label: "node", Weight: 0.5, Tags: []string{"a", "b"}}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			t.Run(enc.Name()+"->"+dec.Name(), func(t *testing.T) {
				data, err := enc.Marshal(in)
				require.NoError(t, err)

				var out attr
				require.NoError(t, dec.Unmarshal(data, &out))
				assert.Equal(t, in, out)
			})
		}
	}
}

func TestGoJSON_Append(t *testing.T) {
	dst := []byte("prefix:")
	out, err := GoJSON{}.Append(dst, 42)
	require.NoError(t, err)
	assert.Equal(t, "prefix:42", string(out))
}

func TestGoJSON_AppendReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 256)

	out, err := GoJSON{}.Append(buf, attr{Label: "a", Weight: 1})
	require.NoError(t, err)
	assert.Same(t, &buf[:1][0], &out[0])

	want, err := GoJSON{}.Marshal(attr{Label: "b", Tags: []string{"x"}})
	require.NoError(t, err)

	out, err = GoJSON{}.Append(out[:0], attr{Label: "b", Tags: []string{"x"}})
	require.NoError(t, err)
	assert.Same(t, &buf[:1][0], &out[0])
	assert.Equal(t, string(want), string(out))
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, `"x"`, string(MustMarshal(nil, "x")))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
