package adapters

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/mindedal/solosec/internal/model"
)

type semgrepJSON struct {
	Results []json.RawMessage `json:"results"`
}

type semgrepResult struct {
	CheckID string `json:"check_id"`
	Path    string `json:"path"`
	Start   struct {
		Line int `json:"line"`
	} `json:"start"`
	Extra struct {
		Message  string `json:"message"`
		Severity string `json:"severity"` // INFO|WARNING|ERROR
	} `json:"extra"`
}

func ParseSemgrepBytes(b []byte) ([]model.Finding, error) {
	var doc semgrepJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	out := make([]model.Finding, 0, len(doc.Results))
	for _, raw := range doc.Results {
		var r semgrepResult
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		out = append(out, model.Finding{
			Tool:        model.ToolSemgrep,
			RuleID:      r.CheckID,
			Severity:    semgrepSeverity(r.Extra.Severity),
			RawSeverity: r.Extra.Severity,
			File:        filepath.ToSlash(r.Path),
			Line:        safeLine(r.Start.Line),
			Message:     firstNonEmpty(r.Extra.Message, r.CheckID),
			Raw:         raw,
		})
	}
	return out, nil
}

func semgrepSeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return model.SevHigh
	case "WARNING", "WARN":
		return model.SevMedium
	case "INFO":
		return model.SevInfo
	default:
		return model.SevHigh
	}
}
