package clue

import (
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func candle() Definition {
	return Definition{
		Clue:       "I am tall when I'm young and short when I'm old. What am I?",
		Answer:     "candle",
		Definition: "A source of light",
		Fodder:     "wax",
		Indicators: []string{"tall", "short", "old"},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	many := make([]string, 40)
	for i := range many {
		many[i] = strings.Repeat("x", i+1)
	}
	cases := []struct {
		name string
		def  Definition
	}{
		{"full", candle()},
		{"required only", Definition{Clue: "Flower of London (6)", Answer: "thames"}},
		{"definition only", Definition{Clue: "c", Answer: "a", Definition: "d"}},
		{"indicators order", Definition{Clue: "c", Answer: "a", Indicators: []string{"z", "a", "m"}}},
		{"long indicator list", Definition{Clue: "c", Answer: "a", Indicators: many}},
		{"unicode and html", Definition{Clue: "Café <b> & \"quotes\"", Answer: "Straße"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := Encode(tc.def)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(tok)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.def) {
				t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, tc.def)
			}
		})
	}
}

func TestEncodeOmitsBlankOptionalFields(t *testing.T) {
	def := Definition{Clue: "c", Answer: "a", Definition: "  ", Fodder: "", Indicators: []string{}}
	tok, err := Encode(def)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw, _ := base64.RawURLEncoding.DecodeString(tok)
	if string(raw) != `{"clue":"c","answer":"a"}` {
		t.Errorf("unexpected payload %s", raw)
	}
	got, err := Decode(tok)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Definition != "" || got.Fodder != "" || got.Indicators != nil {
		t.Errorf("expected optional fields absent, got %#v", got)
	}
}

func TestEncodeDropsBlankIndicatorEntries(t *testing.T) {
	tok, err := Encode(Definition{Clue: "c", Answer: "a", Indicators: []string{"one", " ", "", "two"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _ := Decode(tok)
	if !reflect.DeepEqual(got.Indicators, []string{"one", "two"}) {
		t.Errorf("Indicators = %v", got.Indicators)
	}
}

func TestEncodeValidation(t *testing.T) {
	cases := []struct {
		def   Definition
		field string
	}{
		{Definition{Clue: "", Answer: "x"}, "clue"},
		{Definition{Clue: "x", Answer: ""}, "answer"},
		{Definition{}, "clue"},
		{Definition{Clue: "   ", Answer: "x"}, "clue"},
		{Definition{Clue: "x", Answer: "\t"}, "answer"},
		{Definition{Clue: "c", Answer: "a\xffb"}, "answer"},
		{Definition{Clue: "c\xc3", Answer: "a"}, "clue"},
		{Definition{Clue: "c", Answer: "a", Fodder: "\xfe"}, "fodder"},
		{Definition{Clue: "c", Answer: "a", Definition: "ok", Indicators: []string{"ok", "\x80"}}, "indicators"},
	}
	for _, tc := range cases {
		tok, err := Encode(tc.def)
		if tok != "" {
			t.Errorf("Encode(%#v) produced token %q", tc.def, tok)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("Encode(%#v) err = %v, want ErrValidation", tc.def, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Errorf("Encode(%#v) field = %v, want %s", tc.def, ve, tc.field)
		}
	}
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name  string
		token string
		kind  DecodeKind
		want  error
	}{
		{"empty", "", MalformedEncoding, ErrMalformedEncoding},
		{"not base64", "%%%not*base64!!", MalformedEncoding, ErrMalformedEncoding},
		{"bad length", "abcde", MalformedEncoding, ErrMalformedEncoding},
		{"mixed alphabets", "ab-+", MalformedEncoding, ErrMalformedEncoding},
		{"oversized", strings.Repeat("A", MaxTokenLen+4), MalformedEncoding, ErrMalformedEncoding},
		{"plain text", b64("hello world"), MalformedPayload, ErrMalformedPayload},
		{"binary", base64.StdEncoding.EncodeToString([]byte{0xff, 0x00, 0x13, 0x37}), MalformedPayload, ErrMalformedPayload},
		{"json array", b64(`["clue","answer"]`), MalformedPayload, ErrMalformedPayload},
		{"json null", b64(`null`), MalformedPayload, ErrMalformedPayload},
		{"json string", b64(`"candle"`), MalformedPayload, ErrMalformedPayload},
		{"trailing data", b64(`{"clue":"c","answer":"a"}{}`), MalformedPayload, ErrMalformedPayload},
		{"wrong clue type", b64(`{"clue":42,"answer":"a"}`), MalformedPayload, ErrMalformedPayload},
		{"wrong indicators type", b64(`{"clue":"c","answer":"a","indicators":"tall"}`), MalformedPayload, ErrMalformedPayload},
		{"missing answer", b64(`{"clue":"c"}`), MissingRequiredField, ErrMissingField},
		{"missing clue", b64(`{"answer":"a"}`), MissingRequiredField, ErrMissingField},
		{"null answer", b64(`{"clue":"c","answer":null}`), MissingRequiredField, ErrMissingField},
		{"blank answer", b64(`{"clue":"c","answer":"  "}`), MissingRequiredField, ErrMissingField},
		{"empty object", b64(`{}`), MissingRequiredField, ErrMissingField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.token)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if de.Kind != tc.kind {
				t.Errorf("kind = %v, want %v", de.Kind, tc.kind)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tc.want)
			}
		})
	}
}

func TestDecodeMissingFieldNamesField(t *testing.T) {
	_, err := Decode(b64(`{"clue":"c"}`))
	var de *DecodeError
	if !errors.As(err, &de) || de.Field != "answer" {
		t.Fatalf("expected missing answer, got %v", err)
	}
}

func TestDecodeBrowserTokens(t *testing.T) {
	payload := `{"clue":"Is it? Yes >>> no","answer":"candle","indicators":["a","b"]}`
	std := base64.StdEncoding.EncodeToString([]byte(payload))
	if !strings.ContainsAny(std, "+/=") {
		t.Fatalf("test payload should exercise the std alphabet, got %s", std)
	}
	for name, tok := range map[string]string{
		"std padded":     std,
		"std unpadded":   strings.TrimRight(std, "="),
		"plus as space":  strings.ReplaceAll(std, "+", " "),
		"surrounding ws": "  " + std + "\n",
		"url unpadded":   base64.RawURLEncoding.EncodeToString([]byte(payload)),
		"url padded":     base64.URLEncoding.EncodeToString([]byte(payload)),
	} {
		got, err := Decode(tok)
		if err != nil {
			t.Errorf("%s: Decode: %v", name, err)
			continue
		}
		if got.Answer != "candle" || len(got.Indicators) != 2 {
			t.Errorf("%s: unexpected definition %#v", name, got)
		}
	}
}

func TestDecodeIgnoresUnknownKeysAndBlankHints(t *testing.T) {
	got, err := Decode(b64(`{"answer":"a","clue":"c","extra":true,"fodder":" ","indicators":[]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Definition{Clue: "c", Answer: "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestKey(t *testing.T) {
	tok, _ := Encode(candle())
	k := Key(tok)
	if len(k) != 32 {
		t.Fatalf("Key length = %d, want 32", len(k))
	}
	if Key(tok) != k {
		t.Error("Key is not deterministic")
	}
	other, _ := Encode(Definition{Clue: "c", Answer: "a"})
	if Key(other) == k {
		t.Error("distinct tokens share a key")
	}
	std := b64(`{"clue":"Is it? Yes >>> no","answer":"a"}`)
	if Key(std) != Key(strings.ReplaceAll(std, "+", " ")) {
		t.Error("space-for-plus damage changed the key")
	}
}

func TestEncodeIsStable(t *testing.T) {
	a, _ := Encode(candle())
	b, _ := Encode(candle())
	if a != b {
		t.Errorf("Encode not stable: %q vs %q", a, b)
	}
}
