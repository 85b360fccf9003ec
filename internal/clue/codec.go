// internal/clue/codec.go
//
// Token codec: Definition <-> URL-embeddable token.
// Responsibilities:
//   - Encode: validate, drop blank optional fields, JSON-serialize, base64url (no padding).
//   - Decode: base64 (url or std alphabet, padded or not) -> JSON object -> Definition.
//   - Key: fixed-length fingerprint of a token, used to scope session state.
//
// Notes:
//   - Field order in the JSON follows the Definition struct, so Go-produced
//     tokens are stable; tokens made elsewhere may order keys differently and
//     therefore get a different Key.
//   - Decode accepts browser btoa() output, including a '+' that a form or
//     query parser has already turned into a space.

package clue

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// MaxTokenLen bounds the accepted token size (bytes of encoded text).
const MaxTokenLen = 64 << 10

// keySize is the GameKey digest length in bytes (32 hex chars).
const keySize = 16

// Encode validates d and returns its token.
func Encode(d Definition) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d.compact()); err != nil {
		return "", err
	}
	payload := bytes.TrimRight(buf.Bytes(), "\n")
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// wire mirrors Definition with pointers so absent keys can be told apart.
type wire struct {
	Clue       *string  `json:"clue"`
	Answer     *string  `json:"answer"`
	Definition *string  `json:"definition"`
	Fodder     *string  `json:"fodder"`
	Indicators []string `json:"indicators"`
}

// Decode parses a token produced by Encode (or by the browser authoring page).
// All failures are *DecodeError.
func Decode(token string) (Definition, error) {
	raw, err := decodeText(token)
	if err != nil {
		return Definition{}, &DecodeError{Kind: MalformedEncoding, Err: err}
	}

	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return Definition{}, &DecodeError{Kind: MalformedPayload, Err: errors.New("not valid JSON")}
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Definition{}, &DecodeError{Kind: MalformedPayload, Err: errors.New("not a JSON object")}
	}
	var w wire
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return Definition{}, &DecodeError{Kind: MalformedPayload, Err: err}
	}

	if w.Clue == nil || blank(*w.Clue) {
		return Definition{}, &DecodeError{Kind: MissingRequiredField, Field: "clue"}
	}
	if w.Answer == nil || blank(*w.Answer) {
		return Definition{}, &DecodeError{Kind: MissingRequiredField, Field: "answer"}
	}

	d := Definition{Clue: *w.Clue, Answer: *w.Answer, Indicators: w.Indicators}
	if w.Definition != nil {
		d.Definition = *w.Definition
	}
	if w.Fodder != nil {
		d.Fodder = *w.Fodder
	}
	return d.compact(), nil
}

// decodeText undoes the binary-to-text step.
func decodeText(token string) ([]byte, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return nil, errors.New("empty token")
	}
	if len(s) > MaxTokenLen {
		return nil, errors.New("token too long")
	}
	// Query decoding turns '+' into ' '; the alphabet has no spaces.
	s = strings.ReplaceAll(s, " ", "+")
	s = strings.TrimRight(s, "=")

	enc := base64.RawURLEncoding
	if strings.ContainsAny(s, "+/") {
		enc = base64.RawStdEncoding
	}
	return enc.DecodeString(s)
}

// Key returns the GameKey for token: hex BLAKE2b-128 of the token text.
// Surrounding whitespace and space-for-plus damage do not change the key.
func Key(token string) string {
	s := strings.ReplaceAll(strings.TrimSpace(token), " ", "+")
	h, _ := blake2b.New(keySize, nil) // only fails for bad size or oversized key
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}
