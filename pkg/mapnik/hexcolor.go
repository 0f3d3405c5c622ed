package mapnik

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// FixHexColors rewrites rgb(r,g,b) attribute values on symbolizer
// elements (children of Style/Rule) as #rrggbb. Other content passes
// through unchanged. Applying it twice yields the same document.
func FixHexColors(doc []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	var stack []string
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read map document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isRuleSymbolizer(stack, t.Name.Local) {
				t = t.Copy()
				for i, attr := range t.Attr {
					if hex, ok := rgbToHex(attr.Value); ok {
						t.Attr[i].Value = hex
					}
				}
			}
			stack = append(stack, t.Name.Local)
			tok = t
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}

		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("failed to write map document: %w", err)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("failed to read map document: unclosed element <%s>", stack[len(stack)-1])
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write map document: %w", err)
	}
	return buf.Bytes(), nil
}

func isRuleSymbolizer(stack []string, local string) bool {
	n := len(stack)
	return n >= 2 &&
		stack[n-1] == "Rule" &&
		stack[n-2] == "Style" &&
		strings.HasSuffix(local, "Symbolizer")
}

func rgbToHex(value string) (string, bool) {
	if !strings.HasPrefix(value, "rgb(") {
		return "", false
	}
	c, err := ParseColor(value)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
