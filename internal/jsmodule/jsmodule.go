package jsmodule

// Package jsmodule reads and writes the data modules the public site
// consumes: plain JS source of the form
//
//	export const <name> = <literal>;
//
// where <literal> is a JSON object or array. Only the literal is ever
// touched on rewrite; the wrapper is regenerated byte-for-byte in the shape
// the site build expects.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind selects whether extraction looks for an object or array literal.
type Kind int

const (
	KindObject Kind = iota
	KindArray
)

// ErrLiteralNotFound reports that the source contains no balanced literal
// of the requested kind.
var ErrLiteralNotFound = errors.New("no balanced literal found in source")

// ParseError wraps a syntax error inside an extracted literal. Self-written
// files always parse, but a hand-edited or corrupted remote file may not.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed literal: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractLiteral returns the first balanced {...} or [...] span in src.
//
// It is a depth scanner, not a regex: it tracks string context (single,
// double and backtick quotes, with backslash escapes) so that brackets
// inside string values never terminate the scan early. A description like
// "a { b } c" therefore cannot truncate the extraction.
func ExtractLiteral(src string, kind Kind) (string, error) {
	opener, closer := byte('{'), byte('}')
	if kind == KindArray {
		opener, closer = '[', ']'
	}

	var (
		start   = -1
		depth   = 0
		quote   byte // active string delimiter, 0 when outside strings
		escaped bool
	)

	for i := 0; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			// Strings outside a literal are boilerplate; skip them too so a
			// bracket in a leading comment string cannot fake a start.
			quote = c
		case opener:
			if depth == 0 {
				start = i
			}
			depth++
		case closer:
			if depth > 0 {
				depth--
				if depth == 0 {
					return src[start : i+1], nil
				}
			}
		}
	}

	return "", ErrLiteralNotFound
}

// Parse decodes an extracted literal into v, reporting syntax problems as
// a *ParseError.
func Parse(literal string, v any) error {
	if err := json.Unmarshal([]byte(literal), v); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// ParseDocument extracts the literal of the given kind from a full module
// source and decodes it into v.
func ParseDocument(src string, kind Kind, v any) error {
	literal, err := ExtractLiteral(src, kind)
	if err != nil {
		return err
	}
	return Parse(literal, v)
}

// Serialize renders v back into module source under the given export name,
// with stable two-space indentation so commit diffs stay readable.
func Serialize(exportName string, v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// The site consumes this as JS, not HTML; keep < and & literal the way
	// the previous producer did.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("serialize %s: %w", exportName, err)
	}
	literal := bytes.TrimRight(buf.Bytes(), "\n")

	return fmt.Sprintf("export const %s = %s;", exportName, literal), nil
}
