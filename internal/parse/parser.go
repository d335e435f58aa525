package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kayz/slidesmith/internal/debug"
	"github.com/kayz/slidesmith/internal/variant"
)

// ErrUnparsable means no decodable JSON object could be recovered from the
// generator's response.
var ErrUnparsable = errors.New("response unparsable")

// ElementMissingError reports a spec element absent from the decoded response.
type ElementMissingError struct {
	VariantID string
	ElementID string
}

func (e *ElementMissingError) Error() string {
	return fmt.Sprintf("response for variant %s is missing element %s", e.VariantID, e.ElementID)
}

// FieldMissingError reports a required field absent from an element's content.
type FieldMissingError struct {
	VariantID string
	ElementID string
	Field     string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("response for variant %s element %s is missing field %s",
		e.VariantID, e.ElementID, e.Field)
}

// Response parses the raw generator output into per-element field content and
// verifies structural completeness against the spec. Decoding is a two-stage
// strategy: strict decode first, then recovery of the first balanced brace
// block from surrounding prose or code fences.
func Response(raw string, spec *variant.Spec) (map[string]map[string]string, error) {
	decoded, err := decode(raw)
	if err != nil {
		return nil, err
	}

	content := make(map[string]map[string]string, len(spec.Elements))
	for _, el := range spec.Elements {
		elementRaw, ok := decoded[el.ID]
		if !ok {
			return nil, &ElementMissingError{VariantID: spec.ID, ElementID: el.ID}
		}
		fields, ok := elementRaw.(map[string]any)
		if !ok {
			return nil, &ElementMissingError{VariantID: spec.ID, ElementID: el.ID}
		}

		out := make(map[string]string, len(fields))
		for name, v := range fields {
			out[name] = stringFromAny(v)
		}
		for _, field := range el.RequiredFields {
			if _, ok := fields[field]; !ok {
				return nil, &FieldMissingError{VariantID: spec.ID, ElementID: el.ID, Field: field}
			}
		}
		content[el.ID] = out
	}

	return content, nil
}

func decode(raw string) (map[string]any, error) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil && decoded != nil {
		return decoded, nil
	}

	recovered := firstBraceBlock(stripCodeFences(raw))
	if recovered == "" {
		return nil, fmt.Errorf("%w: no JSON object found", ErrUnparsable)
	}
	debug.Log("strict decode failed, recovered %d-byte brace block", len(recovered))
	if err := json.Unmarshal([]byte(recovered), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	if decoded == nil {
		return nil, fmt.Errorf("%w: null response body", ErrUnparsable)
	}
	return decoded, nil
}

// stripCodeFences removes a surrounding markdown code fence, tolerating a
// language tag on the opening line.
func stripCodeFences(src string) string {
	s := strings.TrimSpace(src)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	body := lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		body = lines[1 : len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// firstBraceBlock returns the first balanced {...} block in s, skipping brace
// characters inside JSON string literals. A candidate that never closes (a
// stray brace in surrounding prose) is skipped in favor of the next opening
// brace. Returns "" if no balanced block exists.
func firstBraceBlock(s string) string {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end := closingBrace(s, start); end >= 0 {
			return s[start : end+1]
		}
		off := strings.IndexByte(s[start+1:], '{')
		if off < 0 {
			return ""
		}
		start += 1 + off
	}
	return ""
}

// closingBrace returns the index of the brace closing the block opened at
// start, or -1 if the block never closes.
func closingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stringFromAny(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
