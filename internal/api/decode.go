package api

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

const defaultFallbackCharset = "EUC-KR"

// charsetResolver turns raw KRX response bytes into text. The upstream mixes
// UTF-8 and EUC-KR/MS949 per response, so candidates are tried in a fixed
// order under strict decoding, and a candidate only wins if the result also
// looks like JSON. When nothing wins the bytes are decoded leniently with
// the fallback charset; Decode never fails.
type charsetResolver struct {
	fallback encoding.Encoding
}

func newCharsetResolver(name string) (*charsetResolver, error) {
	enc, err := lookupCharset(name)
	if err != nil {
		return nil, err
	}
	return &charsetResolver{fallback: enc}, nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euc-kr", "euckr", "ms949", "cp949", "windows-949":
		// WHATWG euc-kr is the CP949 superset, so one encoding covers
		// every Korean charset KRX has been seen to answer with.
		return korean.EUCKR, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported response charset %q: %w", name, err)
	}
	return enc, nil
}

// Decode resolves the charset of raw response bytes. Pure function of its
// input and the configured fallback.
func (r *charsetResolver) Decode(b []byte) string {
	// UTF-8 first: strict validity plus the JSON shape check.
	if utf8.Valid(b) {
		if s := string(b); looksLikeJSON(s) {
			return s
		}
	}

	for _, enc := range []encoding.Encoding{korean.EUCKR, r.fallback} {
		if enc == unicode.UTF8 {
			continue // already tried above
		}
		if s, ok := decodeStrict(b, enc); ok && looksLikeJSON(s) {
			return s
		}
	}

	// Last resort: lenient decode, replacement characters allowed.
	out, err := r.fallback.NewDecoder().Bytes(b)
	if err != nil {
		// A decoder without strict wrapping substitutes rather than
		// erroring; fall back to raw bytes if it somehow does.
		return string(b)
	}
	return string(out)
}

// decodeStrict decodes b with enc, treating any unmappable input as failure.
// The x/text decoders substitute U+FFFD instead of erroring, and U+FFFD has
// no encoding in the legacy Korean charsets, so its presence in the output
// marks an invalid byte sequence.
func decodeStrict(b []byte, enc encoding.Encoding) (string, bool) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

func looksLikeJSON(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 2 {
		return false
	}
	return (strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}")) ||
		(strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]"))
}
