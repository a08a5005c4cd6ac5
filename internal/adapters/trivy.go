package adapters

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mindedal/solosec/internal/model"
)

// Compatível com o trivy.json de scan de vulnerabilidades (fs/image)
type trivyJSON struct {
	Results []struct {
		Target          string            `json:"Target"`
		Vulnerabilities []json.RawMessage `json:"Vulnerabilities"`
	} `json:"Results"`
}

type trivyVuln struct {
	VulnerabilityID  string `json:"VulnerabilityID"`
	PkgName          string `json:"PkgName"`
	InstalledVersion string `json:"InstalledVersion"`
	FixedVersion     string `json:"FixedVersion"`
	Title            string `json:"Title"`
	Severity         string `json:"Severity"`
}

func ParseTrivyBytes(b []byte) ([]model.Finding, error) {
	var doc trivyJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var out []model.Finding
	for _, r := range doc.Results {
		target := filepath.ToSlash(r.Target)
		for _, raw := range r.Vulnerabilities {
			var v trivyVuln
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
			pkg := firstNonEmpty(v.PkgName, "pacote desconhecido")
			ver := firstNonEmpty(v.InstalledVersion, "versão desconhecida")
			title := firstNonEmpty(v.Title, v.VulnerabilityID)
			msg := fmt.Sprintf("%s %s - %s", pkg, ver, title)
			if fix := strings.TrimSpace(v.FixedVersion); fix != "" {
				msg += fmt.Sprintf(" (correção: %s)", fix)
			} else {
				msg += " (sem correção disponível)"
			}
			out = append(out, model.Finding{
				Tool:        model.ToolTrivy,
				RuleID:      v.VulnerabilityID,
				Severity:    trivySeverity(v.Severity),
				RawSeverity: v.Severity,
				File:        target,
				Message:     msg,
				Raw:         raw,
			})
		}
	}
	return out, nil
}

func trivySeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return model.SevCritical
	case "HIGH":
		return model.SevHigh
	case "MEDIUM":
		return model.SevMedium
	case "LOW":
		return model.SevLow
	case "UNKNOWN", "":
		return model.SevLow
	default:
		// token fora da tabela: o gate nunca passa em silêncio
		return model.SevHigh
	}
}
