package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eucKRHangul is "한글" encoded in EUC-KR. Invalid as UTF-8.
var eucKRHangul = []byte{0xC7, 0xD1, 0xB1, 0xDB}

func newTestResolver(t *testing.T, name string) *charsetResolver {
	t.Helper()
	r, err := newCharsetResolver(name)
	require.NoError(t, err)
	return r
}

func TestDecode_UTF8Passthrough(t *testing.T) {
	r := newTestResolver(t, "EUC-KR")

	in := `{"OutBlock_1":[{"ISU_NM":"한글"}]}`
	assert.Equal(t, in, r.Decode([]byte(in)))
}

func TestDecode_EUCKR(t *testing.T) {
	r := newTestResolver(t, "EUC-KR")

	raw := append([]byte(`{"ISU_NM":"`), eucKRHangul...)
	raw = append(raw, []byte(`"}`)...)

	assert.Equal(t, `{"ISU_NM":"한글"}`, r.Decode(raw))
}

func TestDecode_MS949Fallback(t *testing.T) {
	// MS949 resolves to the same superset encoding, so MS949 bytes decode
	// under either configuration.
	r := newTestResolver(t, "MS949")

	raw := append([]byte(`["`), eucKRHangul...)
	raw = append(raw, []byte(`"]`)...)

	assert.Equal(t, `["한글"]`, r.Decode(raw))
}

func TestDecode_UTF8NotJSONFallsThrough(t *testing.T) {
	r := newTestResolver(t, "EUC-KR")

	// Valid UTF-8 but not JSON-shaped: no candidate wins, lenient fallback
	// still returns the text unchanged (pure ASCII round-trips).
	assert.Equal(t, "plain text error page", r.Decode([]byte("plain text error page")))
}

func TestDecode_NeverFails(t *testing.T) {
	r := newTestResolver(t, "EUC-KR")

	// A lone lead byte is invalid in both UTF-8 and EUC-KR. The lenient
	// fallback substitutes rather than erroring.
	got := r.Decode([]byte{0xC7})
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "�")
}

func TestDecode_EmptyInput(t *testing.T) {
	r := newTestResolver(t, "EUC-KR")
	assert.Equal(t, "", r.Decode(nil))
}

func TestLookupCharset(t *testing.T) {
	for _, name := range []string{"", "EUC-KR", "euckr", "MS949", "cp949", "windows-949", "UTF-8"} {
		_, err := lookupCharset(name)
		assert.NoError(t, err, "lookupCharset(%q)", name)
	}

	_, err := lookupCharset("klingon-1")
	assert.Error(t, err)
}

func TestLooksLikeJSON(t *testing.T) {
	assert.True(t, looksLikeJSON(`{"a":1}`))
	assert.True(t, looksLikeJSON("  [1,2]  "))
	assert.True(t, looksLikeJSON("{}"))
	assert.False(t, looksLikeJSON(""))
	assert.False(t, looksLikeJSON("{"))
	assert.False(t, looksLikeJSON("<html></html>"))
	assert.False(t, looksLikeJSON(`"just a string"`))
}
