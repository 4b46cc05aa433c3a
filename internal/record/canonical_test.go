package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_Record(t *testing.T) {
	data, err := MarshalCanonical(Record{ID: 2, TextA: "01234567890abcdef", Number: 334, TextB: "testing"})
	require.NoError(t, err)
	assert.Equal(t, `{"id":2,"number":334,"text_a":"01234567890abcdef","text_b":"testing"}`, string(data))
}

func TestMarshalCanonical_NoHTMLEscape(t *testing.T) {
	data, err := MarshalCanonical("<a&b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, string(data))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	// "e" + combining acute accent normalizes to U+00E9
	data, err := MarshalCanonical("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(data))
}

func TestMarshalCanonical_LineSeparators(t *testing.T) {
	data, err := MarshalCanonical("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(data))

	// a literal backslash followed by the text u2028 stays escaped
	data, err = MarshalCanonical(`x\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"x\\u2028"`, string(data))
}

func TestMarshalCanonical_KeyOrderUTF16(t *testing.T) {
	// U+10000 encodes as a surrogate pair (0xD800...) and sorts before U+FF61
	obj := map[string]any{
		"\uff61":     int64(1),
		"\U00010000": int64(2),
		"a":          int64(3),
	}
	data, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":3,\"\U00010000\":2,\"\uff61\":1}", string(data))
}

func TestMarshalCanonical_Rejects(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(1.5)
	assert.Error(t, err)

	_, err = MarshalCanonical([]any{"ok", 2.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")

	_, err = MarshalCanonical(struct{}{})
	assert.Error(t, err)
}

func TestMarshalCanonical_Nested(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"ids":  []uint32{1, 2},
		"ok":   true,
		"name": "x",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ids":[1,2],"name":"x","ok":true}`, string(data))
}
