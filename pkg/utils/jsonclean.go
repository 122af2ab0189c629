package utils

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers a single well-formed JSON value from raw model output.
// The model is asked for bare JSON but routinely wraps it in markdown fences,
// leading prose, or leaves trailing commas behind. Strategy: strict parse
// first; on failure strip fences, locate the first balanced {...} or [...]
// by bracket matching, normalize trailing commas, and round-trip through the
// parser so the returned string is guaranteed syntactically valid.
func ExtractJSON(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewMalformedError("empty response", nil)
	}

	if json.Valid([]byte(trimmed)) {
		return canonicalize(trimmed)
	}

	candidate := stripFences(trimmed)
	candidate = extractBalanced(candidate)
	if candidate == "" {
		return "", NewMalformedError("no balanced JSON value found in response", nil)
	}

	candidate = removeTrailingCommas(candidate)
	return canonicalize(candidate)
}

// canonicalize re-serializes through a parse/stringify round trip, which
// also collapses insignificant whitespace and embedded newlines.
func canonicalize(s string) (string, error) {
	var value any
	if err := json.Unmarshal([]byte(s), &value); err != nil {
		return "", NewMalformedError("response is not parseable JSON after cleanup", err)
	}
	out, err := json.Marshal(value)
	if err != nil {
		return "", NewMalformedError("failed to re-serialize cleaned JSON", err)
	}
	return string(out), nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractBalanced returns the first top-level balanced {...} or [...]
// substring, or "" when none exists. Bracket matching is string-aware so
// braces inside string values do not break the scan.
func extractBalanced(s string) string {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start := objStart
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start = arrStart
	}
	if start == -1 {
		return ""
	}

	end := findMatching(s, start)
	if end == -1 {
		return ""
	}
	return s[start : end+1]
}

// findMatching scans from an opening '{' or '[' at start and returns the
// index of the matching closer, or -1 if the value is unterminated.
func findMatching(s string, start int) int {
	open := s[start]
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// removeTrailingCommas drops commas that directly precede a closing bracket,
// ignoring whitespace, e.g. `{"a":1,}` -> `{"a":1}`. String-aware for the
// same reason as findMatching.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the comma, keep scanning from the whitespace
			}
		}

		b.WriteByte(c)
	}
	return b.String()
}
