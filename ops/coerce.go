package ops

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ValueKind byte

const (
	KindNull ValueKind = iota
	KindDate
	KindNumber
	KindText
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindDate:
		return "DATE"
	case KindNumber:
		return "NUMBER"
	case KindText:
		return "TEXT"
	default:
		panic(fmt.Sprintf("unknown value kind %v", byte(k)))
	}
}

type (
	// Orderable is the coerced form of a raw cell value.
	// Exactly one of Date/Num/Text is meaningful, selected by Kind.
	Orderable struct {
		Kind ValueKind

		Date time.Time
		Num  float64
		Text string
	}
)

// layouts tried in order when coercing a string to a date
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Coerce converts an arbitrary cell value into an orderable form:
// date parse first, then decimal-family numeric parse, otherwise the
// textual form of the value.
func Coerce(v any) Orderable {
	if v == nil {
		return Orderable{Kind: KindNull}
	}

	switch t := v.(type) {
	case time.Time:
		return Orderable{Kind: KindDate, Date: t}
	case float64:
		return Orderable{Kind: KindNumber, Num: t}
	case float32:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case int:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case int8:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case int16:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case int32:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case int64:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case uint:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case uint8:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case uint16:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case uint32:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case uint64:
		return Orderable{Kind: KindNumber, Num: float64(t)}
	case string:
		return coerceString(t)
	default:
		return coerceString(fmt.Sprint(t))
	}
}

func coerceString(s string) Orderable {
	trimmed := strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return Orderable{Kind: KindDate, Date: parsed}
		}
	}

	if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Orderable{Kind: KindNumber, Num: parsed}
	}

	return Orderable{Kind: KindText, Text: s}
}

// Text is the case-normalized textual form of a value. Null coerces to
// an empty string.
func Text(v any) string {
	if v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return strings.ToLower(s)
	}
	return strings.ToLower(fmt.Sprint(v))
}

// Display is the user-facing form of a value, with a fixed sentinel for
// null so breadcrumb tokens never render an empty slot.
func Display(v any) string {
	if v == nil {
		return "(blank)"
	}
	return fmt.Sprint(v)
}

// DateOnly drops the time-of-day portion.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
