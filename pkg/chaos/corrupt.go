package chaos

import (
	"github.com/ohler55/ojg/oj"
)

// Corrupt applies a corruption strategy to a recorded response body and
// returns the mutated body along with the strategy actually applied.
// Bodies that are not JSON-shaped, and any mutation fault, degrade to
// the invalid-payload strategy instead of surfacing an error.
func Corrupt(body []byte, strategy CorruptionStrategy, src Source) ([]byte, CorruptionStrategy) {
	switch strategy {
	case StrategyNullBody:
		return []byte("null"), StrategyNullBody
	case StrategyScrambleFields:
		if out, ok := scrambleFields(body, src); ok {
			return out, StrategyScrambleFields
		}
		return invalidPayload(body, src), StrategyInvalidPayload
	default:
		return invalidPayload(body, src), StrategyInvalidPayload
	}
}

// scrambleFields randomizes every string value in a JSON document while
// preserving its shape. ok is false when the body is not valid JSON.
func scrambleFields(body []byte, src Source) (out []byte, ok bool) {
	if len(body) == 0 {
		return nil, false
	}
	// oj can panic on pathological input; the engine must degrade, not crash.
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	v, err := oj.Parse(body)
	if err != nil {
		return nil, false
	}
	return []byte(oj.JSON(scrambleValue(v, src))), true
}

func scrambleValue(v any, src Source) any {
	switch t := v.(type) {
	case string:
		return scrambleString(t, src)
	case map[string]any:
		for k, e := range t {
			t[k] = scrambleValue(e, src)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = scrambleValue(e, src)
		}
		return t
	default:
		return v
	}
}

const scrambleAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// scrambleString replaces a string with random alphanumerics of the same
// length, so field sizes stay plausible while content becomes garbage.
func scrambleString(s string, src Source) string {
	if len(s) == 0 {
		return s
	}
	b := make([]byte, len(s))
	for i := range b {
		b[i] = scrambleAlphabet[src.Intn(len(scrambleAlphabet))]
	}
	return string(b)
}

// invalidPayload truncates the body at a random point and appends an
// unterminated JSON fragment, guaranteeing the result fails to parse.
func invalidPayload(body []byte, src Source) []byte {
	cut := len(body)
	if cut > 1 {
		cut = 1 + src.Intn(cut-1)
	}
	out := make([]byte, 0, cut+10)
	out = append(out, body[:cut]...)
	return append(out, `{"chaos":`...)
}
