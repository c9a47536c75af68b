package ops

import (
	"cmp"
	"reflect"
	"strings"
	"time"
)

// Equals is the null-safe equality used by equality-family and
// set-membership evaluators and by frequency map keys.
// Two nulls are equal, a null against a non-null is not.
func Equals(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if at, isTime := a.(time.Time); isTime {
		bt, alsoTime := b.(time.Time)
		return alsoTime && at.Equal(bt)
	}

	if !comparableValue(a) || !comparableValue(b) {
		return Text(a) == Text(b)
	}

	return a == b
}

// Compare orders two raw values by coercing both with the same rule.
// If the coercions disagree in kind, or either side is plain text, both
// sides fall back to string comparison of their folded text forms.
// Null sorts before any non-null value, two nulls compare equal.
func Compare(a, b any) int {
	ca := Coerce(a)
	cb := Coerce(b)

	if ca.Kind == KindNull || cb.Kind == KindNull {
		return b2i(cb.Kind == KindNull) - b2i(ca.Kind == KindNull)
	}

	if ca.Kind != cb.Kind || ca.Kind == KindText {
		return strings.Compare(Text(a), Text(b))
	}

	switch ca.Kind {
	case KindDate:
		return ca.Date.Compare(cb.Date)
	default:
		return cmp.Compare(ca.Num, cb.Num)
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MapKey normalizes a value for use as a frequency/domain map key.
// Null gets a private sentinel so map lookups stay null-safe, times are
// collapsed to their UTC instant so wall-clock equal values share a key.
func MapKey(v any) any {
	if v == nil {
		return nullKey
	}
	if t, isTime := v.(time.Time); isTime {
		return t.UTC().Round(0)
	}
	if !comparableValue(v) {
		return Text(v)
	}
	return v
}

// comparableValue reports whether v can be used with == and as a map
// key. Slice or map valued cells fail both, so they are keyed and
// compared through their folded text form instead.
func comparableValue(v any) bool {
	return reflect.TypeOf(v).Comparable()
}

type nullSentinel struct{}

var nullKey = nullSentinel{}
