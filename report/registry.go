package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
)

// Factory creates a report from a dataset.
type Factory func(ds *model.Dataset, opts Options) (Report, error)

var registry = map[string]Factory{
	KindCalculation: func(ds *model.Dataset, opts Options) (Report, error) {
		r, err := NewCalculationReport(ds, opts)
		if err != nil {
			return nil, err
		}
		return r, nil
	},
	KindStates: func(ds *model.Dataset, opts Options) (Report, error) {
		return NewStatesReport(ds, opts), nil
	},
	KindProducts: func(ds *model.Dataset, opts Options) (Report, error) {
		return NewProductsReport(ds, opts), nil
	},
	KindTasks: func(ds *model.Dataset, opts Options) (Report, error) {
		return NewTasksReport(ds, opts), nil
	},
	KindLog: func(ds *model.Dataset, opts Options) (Report, error) {
		return NewLogReport(ds, opts), nil
	},
	KindMargins: func(ds *model.Dataset, opts Options) (Report, error) {
		return NewMarginsReport(ds, opts), nil
	},
}

// maxSuggestionDistance bounds the edit distance of a suggested kind.
const maxSuggestionDistance = 3

// Kinds returns the registered report kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// New creates the report of the given kind.
func New(kind string, ds *model.Dataset, opts Options) (Report, error) {
	factory, ok := registry[strings.ToLower(kind)]
	if !ok {
		return nil, unknownKind(kind)
	}
	if ds == nil {
		return nil, fmt.Errorf("report %s: %w", kind, calcpdf.ErrNoData)
	}
	return factory(ds, opts)
}

func unknownKind(kind string) error {
	best, bestDistance := "", maxSuggestionDistance+1
	for _, k := range Kinds() {
		if d := levenshtein.ComputeDistance(strings.ToLower(kind), k); d < bestDistance {
			best, bestDistance = k, d
		}
	}
	if best != "" {
		return fmt.Errorf("%w %q, did you mean %q?", calcpdf.ErrUnknownKind, kind, best)
	}
	return fmt.Errorf("%w %q (known kinds: %s)", calcpdf.ErrUnknownKind, kind, strings.Join(Kinds(), ", "))
}
