package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/doctpl"
	"github.com/lvillar/calcpdf/internal/config"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/pageops"
	"github.com/lvillar/calcpdf/report"
)

// Toolset holds what the tools need to render reports.
type Toolset struct {
	Config *config.Config
	// Dataset is used when a call names neither a data path nor an inline
	// dataset. It may be nil.
	Dataset *model.Dataset
	Logger  logrus.FieldLogger
}

// Register adds the calcpdf tools and resources to the server.
func Register(s *Server, ts *Toolset) {
	if ts.Config == nil {
		ts.Config = config.Default()
	}
	if ts.Logger == nil {
		ts.Logger = s.logger
	}
	s.AddTool(ts.listReportsTool())
	s.AddTool(ts.renderReportTool())
	s.AddTool(ts.renderTemplateTool())
	s.AddTool(ts.mergePDFsTool())
	s.AddTool(ts.stampPDFTool())
	registerResources(s, ts)
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func (ts *Toolset) listReportsTool() Tool {
	return Tool{
		Name:        "list_reports",
		Description: "List the report kinds that render_report accepts.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		Handler: func(context.Context, map[string]any) (ToolResult, error) {
			return textResult("%s", strings.Join(report.Kinds(), "\n")), nil
		},
	}
}

func (ts *Toolset) renderReportTool() Tool {
	return Tool{
		Name: "render_report",
		Description: "Render a calcpdf report (calculation, states, products, tasks, log, margins) from a dataset. " +
			"Returns the PDF as base64 unless outputPath is set.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind": stringProp("Report kind, see list_reports"),
				"id": map[string]any{
					"type":        "integer",
					"description": "Calculation id, required by the calculation report",
				},
				"dataPath": stringProp("Path to a JSON or YAML dataset file"),
				"dataset": map[string]any{
					"type":        "object",
					"description": "Inline dataset with calculations, states, groups, products, tasks, global_margins and logs",
				},
				"outputPath": stringProp("Optional file path to save the PDF. If omitted, returns base64."),
			},
			"required": []string{"kind"},
		},
		Handler: ts.handleRenderReport,
	}
}

func (ts *Toolset) handleRenderReport(ctx context.Context, args map[string]any) (ToolResult, error) {
	kind, ok := args["kind"].(string)
	if !ok || kind == "" {
		return ToolResult{}, fmt.Errorf("missing 'kind' argument")
	}
	id := 0
	if v, ok := args["id"].(float64); ok {
		id = int(v)
	}
	ds, err := ts.dataset(args)
	if err != nil {
		return ToolResult{}, err
	}

	requestID := uuid.NewString()
	logger := ts.Logger.WithField("request_id", requestID)
	r, err := report.New(kind, ds, ts.Config.ReportOptions(id))
	if err != nil {
		return ToolResult{}, err
	}
	data, err := report.Generate(r, logger, ts.Config.DocumentOptions()...)
	if err != nil {
		return ToolResult{}, err
	}
	return output(args, data, fmt.Sprintf("Report %q rendered (request %s)", r.Title(), requestID))
}

// dataset returns the inline dataset, the dataset at dataPath, or the
// default one, in this order.
func (ts *Toolset) dataset(args map[string]any) (*model.Dataset, error) {
	if inline, ok := args["dataset"]; ok && inline != nil {
		data, err := json.Marshal(inline)
		if err != nil {
			return nil, fmt.Errorf("encoding dataset: %w", err)
		}
		return model.Parse(data, model.FormatJSON)
	}
	if path, ok := args["dataPath"].(string); ok && path != "" {
		return model.LoadFile(path)
	}
	if ts.Dataset == nil {
		return nil, fmt.Errorf("%w: pass dataPath or dataset", calcpdf.ErrNoData)
	}
	return ts.Dataset, nil
}

func (ts *Toolset) renderTemplateTool() Tool {
	return Tool{
		Name: "render_template",
		Description: "Create a PDF document from a JSON object or a JSON/YAML string template. The template supports " +
			"headings, paragraphs, tables with groups and number formats, images, lists, horizontal rules and spacers.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template": map[string]any{
					"type":        []string{"object", "string"},
					"description": "Document template with title, pageSize, pages and elements",
				},
				"outputPath": stringProp("Optional file path to save the PDF. If omitted, returns base64."),
			},
			"required": []string{"template"},
		},
		Handler: ts.handleRenderTemplate,
	}
}

func (ts *Toolset) handleRenderTemplate(ctx context.Context, args map[string]any) (ToolResult, error) {
	var src []byte
	switch tpl := args["template"].(type) {
	case nil:
		return ToolResult{}, fmt.Errorf("missing 'template' argument")
	case string:
		src = []byte(tpl)
	default:
		var err error
		if src, err = json.Marshal(tpl); err != nil {
			return ToolResult{}, fmt.Errorf("encoding template: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := doctpl.Render(&buf, src, ts.Config.DocumentOptions()...); err != nil {
		return ToolResult{}, fmt.Errorf("rendering PDF: %w", err)
	}
	return output(args, buf.Bytes(), "PDF created")
}

func (ts *Toolset) mergePDFsTool() Tool {
	return Tool{
		Name:        "merge_pdfs",
		Description: "Merge multiple PDF files, for example reports and their attachments, into a single PDF.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"inputPaths": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Paths to PDF files to merge, in order",
				},
				"outputPath": stringProp("Path for the merged output PDF"),
			},
			"required": []string{"inputPaths", "outputPath"},
		},
		Handler: ts.handleMergePDFs,
	}
}

func (ts *Toolset) handleMergePDFs(ctx context.Context, args map[string]any) (ToolResult, error) {
	paths, err := stringSlice(args, "inputPaths")
	if err != nil {
		return ToolResult{}, err
	}
	outputPath, ok := args["outputPath"].(string)
	if !ok || outputPath == "" {
		return ToolResult{}, fmt.Errorf("missing 'outputPath' argument")
	}

	if err := pageops.MergeFiles(outputPath, paths...); err != nil {
		return ToolResult{}, fmt.Errorf("merging: %w", err)
	}
	n, err := pageops.PageCount(outputPath)
	if err != nil {
		return ToolResult{}, err
	}
	return textResult("Merged %d PDFs into %s (%d pages)", len(paths), outputPath, n), nil
}

func (ts *Toolset) stampPDFTool() Tool {
	return Tool{
		Name:        "stamp_pdf",
		Description: "Print a diagonal text such as COPY or DRAFT on every page of a PDF, optionally with page numbers.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"inputPath":  stringProp("Path to the PDF file"),
				"outputPath": stringProp("Path for the stamped PDF"),
				"text":       stringProp("Stamp text"),
				"numbered": map[string]any{
					"type":        "boolean",
					"description": "Add page numbers",
				},
			},
			"required": []string{"inputPath", "outputPath"},
		},
		Handler: ts.handleStampPDF,
	}
}

func (ts *Toolset) handleStampPDF(ctx context.Context, args map[string]any) (ToolResult, error) {
	inputPath, _ := args["inputPath"].(string)
	outputPath, _ := args["outputPath"].(string)
	if inputPath == "" || outputPath == "" {
		return ToolResult{}, fmt.Errorf("missing 'inputPath' or 'outputPath' argument")
	}
	text, _ := args["text"].(string)
	numbered, _ := args["numbered"].(bool)

	var buf bytes.Buffer
	if err := pageops.StampFile(&buf, inputPath, pageops.Stamp{Text: text}, numbered); err != nil {
		return ToolResult{}, err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return ToolResult{}, fmt.Errorf("writing file: %w", err)
	}
	return textResult("Stamped %s into %s (%d bytes)", inputPath, outputPath, buf.Len()), nil
}

// output saves data to the outputPath argument, or returns it as base64.
func output(args map[string]any, data []byte, message string) (ToolResult, error) {
	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return textResult("%s: %s (%d bytes)", message, outputPath, len(data)), nil
	}
	return ToolResult{Content: []ContentBlock{
		{Type: "text", Text: fmt.Sprintf("%s (%d bytes)", message, len(data))},
		{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(data)},
	}}, nil
}

func stringSlice(args map[string]any, name string) ([]string, error) {
	raw, ok := args[name].([]any)
	if !ok {
		return nil, fmt.Errorf("missing '%s' argument", name)
	}
	out := make([]string, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("'%s' item %d is not a string", name, i)
		}
		out = append(out, s)
	}
	return out, nil
}
