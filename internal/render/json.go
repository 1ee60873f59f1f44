package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// JSON encodes v with two-space indentation and a trailing newline. Non-ASCII runes and DEL
// are written as \uXXXX escapes, so the output is pure ASCII.
func JSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return escapeNonASCII(buf.Bytes()), nil
}

// Inline encodes fields as a single-line object with sorted keys and ", " / ": " separators.
func Inline(fields map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		key, err := marshalNoHTML(k)
		if err != nil {
			return nil, err
		}
		val, err := marshalNoHTML(fields[k])
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	buf.WriteByte('}')
	return escapeNonASCII(buf.Bytes()), nil
}

func marshalNoHTML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// escapeNonASCII rewrites every rune outside printable ASCII that encoding/json leaves raw.
// Such runes only occur inside string literals, so a byte-level pass is safe.
func escapeNonASCII(b []byte) []byte {
	needs := false
	for _, c := range b {
		if c >= utf8.RuneSelf || c == 0x7f {
			needs = true
			break
		}
	}
	if !needs {
		return b
	}

	out := make([]byte, 0, len(b)+len(b)/2)
	for len(b) > 0 {
		c := b[0]
		if c < utf8.RuneSelf && c != 0x7f {
			out = append(out, c)
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r > 0xffff {
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
