// Package model holds the entities reported on: calculations with their
// items, states, groups, products, tasks, global margins and log entries.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date or a timestamp. It decodes both "2006-01-02" and
// RFC 3339 values.
type Date struct {
	time.Time
}

// NewDate returns the date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("model: date: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("model: invalid date %q", s)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}

// Margin is a margin rate applied to amounts in [Minimum, Maximum).
type Margin struct {
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
	Value   float64 `json:"value"`
}

// Contains reports whether amount falls in the range.
func (m Margin) Contains(amount float64) bool {
	return m.Minimum <= amount && amount < m.Maximum
}

// LookupMargin returns the rate of the first range containing amount, or 0.
func LookupMargin(margins []Margin, amount float64) float64 {
	for _, m := range margins {
		if m.Contains(amount) {
			return m.Value
		}
	}
	return 0
}

// State is the workflow state of a calculation.
type State struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Editable    bool   `json:"editable"`
}

// Group is the top level classification of items. Its margin ranges apply to
// the amount of the group in a calculation.
type Group struct {
	ID          int      `json:"id"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Margins     []Margin `json:"margins,omitempty"`
}

// Product is a priced article of the catalog.
type Product struct {
	ID          int     `json:"id"`
	Group       string  `json:"group"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Hidden      bool    `json:"hidden,omitempty"`
}

// Task is a unit of work with its own margin ranges.
type Task struct {
	ID          int        `json:"id"`
	Group       string     `json:"group"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Unit        string     `json:"unit"`
	Items       []TaskItem `json:"items,omitempty"`
	Margins     []Margin   `json:"margins,omitempty"`
}

// TaskItem is a product used by a task.
type TaskItem struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
}

// Total returns price times quantity.
func (t TaskItem) Total() float64 {
	return t.Price * t.Quantity
}

// Total returns the sum of the task items.
func (t Task) Total() float64 {
	total := 0.0
	for _, item := range t.Items {
		total += item.Total()
	}
	return total
}

// LogEntry is an application log record.
type LogEntry struct {
	ID      int    `json:"id"`
	Channel string `json:"channel"`
	Level   string `json:"level"`
	Message string `json:"message"`
	Date    Date   `json:"date"`
}

// LevelName returns the upper-case level.
func (l LogEntry) LevelName() string {
	return strings.ToUpper(l.Level)
}
