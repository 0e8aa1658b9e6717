package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/lvillar/calcpdf/report"
)

const (
	kindsURI   = "calcpdf://kinds"
	datasetURI = "calcpdf://dataset"
)

func registerResources(s *Server, ts *Toolset) {
	s.AddResource(Resource{
		URI:         kindsURI,
		Name:        "Report kinds",
		Description: "The report kinds that render_report accepts",
		MIMEType:    "application/json",
		Handler: func(uri string) ([]ResourceContent, error) {
			return jsonContent(uri, report.Kinds())
		},
	})
	if ts.Dataset == nil {
		return
	}
	s.AddResource(Resource{
		URI:         datasetURI,
		Name:        "Dataset summary",
		Description: "Number of entities in the default dataset and calculations per state",
		MIMEType:    "application/json",
		Handler:     ts.handleDatasetResource,
	})
}

type datasetSummary struct {
	Calculations  []calculationSummary `json:"calculations"`
	States        map[string]int       `json:"states"`
	Groups        int                  `json:"groups"`
	Products      int                  `json:"products"`
	Tasks         int                  `json:"tasks"`
	GlobalMargins int                  `json:"globalMargins"`
	Logs          int                  `json:"logs"`
}

type calculationSummary struct {
	ID       int     `json:"id"`
	Customer string  `json:"customer"`
	State    string  `json:"state"`
	Total    float64 `json:"total"`
}

func (ts *Toolset) handleDatasetResource(uri string) ([]ResourceContent, error) {
	ds := ts.Dataset
	summary := datasetSummary{
		Calculations:  make([]calculationSummary, 0, len(ds.Calculations)),
		States:        make(map[string]int, len(ds.States)),
		Groups:        len(ds.Groups),
		Products:      len(ds.Products),
		Tasks:         len(ds.Tasks),
		GlobalMargins: len(ds.GlobalMargins),
		Logs:          len(ds.Logs),
	}
	for _, st := range ds.States {
		summary.States[st.Code] = ds.CountByState(st.Code)
	}
	for i := range ds.Calculations {
		c := &ds.Calculations[i]
		summary.Calculations = append(summary.Calculations, calculationSummary{
			ID:       c.ID,
			Customer: c.Customer,
			State:    c.State,
			Total:    ds.Totals(c).Overall(),
		})
	}
	return jsonContent(uri, summary)
}

func jsonContent(uri string, v any) ([]ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(data)}}, nil
}
