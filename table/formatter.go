package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValueFormatter converts a raw value to the text of a cell. The variant is
// chosen when the column is declared.
type ValueFormatter interface {
	Format(v any) string
}

// NewPrinter returns a message printer for the given BCP 47 locale. Invalid
// tags fall back to English.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func printerOrDefault(p *message.Printer) *message.Printer {
	if p == nil {
		return message.NewPrinter(language.English)
	}
	return p
}

// TextFormatter prints values with fmt. Nil is the empty string.
type TextFormatter struct{}

func (TextFormatter) Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// IntegerFormatter prints numbers rounded to integers with the locale
// grouping separator.
type IntegerFormatter struct {
	Printer *message.Printer
}

func (f IntegerFormatter) Format(v any) string {
	n, ok := toFloat(v)
	if !ok {
		return TextFormatter{}.Format(v)
	}
	return printerOrDefault(f.Printer).Sprintf("%.0f", n)
}

// AmountFormatter prints numbers with a fixed number of decimals (2 when
// Decimals is 0 or less) and the locale separators.
type AmountFormatter struct {
	Printer  *message.Printer
	Decimals int
}

func (f AmountFormatter) Format(v any) string {
	n, ok := toFloat(v)
	if !ok {
		return TextFormatter{}.Format(v)
	}
	decimals := f.Decimals
	if decimals <= 0 {
		decimals = 2
	}
	return printerOrDefault(f.Printer).Sprintf(fmt.Sprintf("%%.%df", decimals), n)
}

// PercentFormatter prints a ratio (0.25) as a percentage ("25%").
type PercentFormatter struct {
	Printer  *message.Printer
	Decimals int
}

func (f PercentFormatter) Format(v any) string {
	n, ok := toFloat(v)
	if !ok {
		return TextFormatter{}.Format(v)
	}
	return printerOrDefault(f.Printer).Sprintf(fmt.Sprintf("%%.%df%%%%", max(0, f.Decimals)), n*100)
}

// DateFormatter prints time values with Layout (02.01.2006 when empty).
type DateFormatter struct {
	Layout string
}

func (f DateFormatter) Format(v any) string {
	layout := f.Layout
	if layout == "" {
		layout = "02.01.2006"
	}
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(layout)
	}
	return TextFormatter{}.Format(v)
}

// BoolFormatter prints True or False (the defaults are "Yes" and "No").
type BoolFormatter struct {
	True, False string
}

func (f BoolFormatter) Format(v any) string {
	b, ok := v.(bool)
	if !ok {
		return TextFormatter{}.Format(v)
	}
	if b {
		if f.True == "" {
			return "Yes"
		}
		return f.True
	}
	if f.False == "" {
		return "No"
	}
	return f.False
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(t, 64)
		return n, err == nil
	}
	return 0, false
}
