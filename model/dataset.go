package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/lvillar/calcpdf"
)

// Dataset is the set of entities the reports are generated from.
type Dataset struct {
	Calculations  []Calculation `json:"calculations,omitempty"`
	States        []State       `json:"states,omitempty"`
	Groups        []Group       `json:"groups,omitempty"`
	Products      []Product     `json:"products,omitempty"`
	Tasks         []Task        `json:"tasks,omitempty"`
	GlobalMargins []Margin      `json:"global_margins,omitempty"`
	Logs          []LogEntry    `json:"logs,omitempty"`
}

// Format is the encoding of a dataset.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format of a file by extension. Anything but .yaml
// and .yml is JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load decodes a dataset and validates it.
func Load(r io.Reader, format Format) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("model: read: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a dataset from data and validates it.
func Parse(data []byte, format Format) (*Dataset, error) {
	if format == FormatYAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("model: yaml: %w", err)
		}
		data = converted
	}
	var ds Dataset
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LoadFile loads a JSON or YAML dataset file.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	defer f.Close()
	return Load(f, FormatOf(path))
}

// Validate checks the margin ranges and the unicity of the calculation
// identifiers.
func (ds *Dataset) Validate() error {
	var errs []error
	checkRanges := func(owner string, margins []Margin) {
		for i, m := range margins {
			if m.Minimum >= m.Maximum {
				errs = append(errs, fmt.Errorf("%s: margin %d: minimum %g is not below maximum %g", owner, i, m.Minimum, m.Maximum))
			}
		}
	}
	for _, g := range ds.Groups {
		checkRanges("group "+g.Code, g.Margins)
	}
	for _, t := range ds.Tasks {
		checkRanges("task "+t.Description, t.Margins)
	}
	checkRanges("global margins", ds.GlobalMargins)

	seen := map[int]bool{}
	for _, c := range ds.Calculations {
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("calculation %d: duplicate identifier", c.ID))
		}
		seen[c.ID] = true
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", calcpdf.ErrInvalidParam, err)
	}
	return nil
}

// Calculation returns the calculation with the given identifier.
func (ds *Dataset) Calculation(id int) (*Calculation, error) {
	for i := range ds.Calculations {
		if ds.Calculations[i].ID == id {
			return &ds.Calculations[i], nil
		}
	}
	return nil, fmt.Errorf("calculation %d: %w", id, calcpdf.ErrNotFound)
}

// State returns the state with the given code.
func (ds *Dataset) State(code string) (State, bool) {
	for _, s := range ds.States {
		if strings.EqualFold(s.Code, code) {
			return s, true
		}
	}
	return State{}, false
}

// Group returns the group with the given code.
func (ds *Dataset) Group(code string) (Group, bool) {
	for _, g := range ds.Groups {
		if g.Code == code {
			return g, true
		}
	}
	return Group{}, false
}

// CountByState returns the number of calculations in the state.
func (ds *Dataset) CountByState(code string) int {
	count := 0
	for _, c := range ds.Calculations {
		if strings.EqualFold(c.State, code) {
			count++
		}
	}
	return count
}

// Totals computes the totals of c: the groups margins are looked up in the
// groups of the dataset and the global margin in the global margins.
func (ds *Dataset) Totals(c *Calculation) Totals {
	totals := Totals{
		Items:      c.ItemsTotal(),
		UserMargin: c.UserMargin,
	}
	for _, s := range c.Sections() {
		amount := s.Amount()
		margin := 0.0
		if g, ok := ds.Group(s.Group); ok {
			margin = LookupMargin(g.Margins, amount)
		}
		totals.Groups = append(totals.Groups, GroupTotal{Group: s.Group, Amount: amount, Margin: margin})
	}
	totals.GlobalMargin = LookupMargin(ds.GlobalMargins, totals.GroupsTotal())
	return totals
}
