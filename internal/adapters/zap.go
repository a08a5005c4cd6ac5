package adapters

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mindedal/solosec/internal/model"
)

// Shape do relatório JSON do OWASP ZAP (baseline/full scan)
type zapJSON struct {
	Site []struct {
		Alerts []json.RawMessage `json:"alerts"`
	} `json:"site"`
}

type zapAlert struct {
	PluginID string `json:"pluginid"`
	Alert    string `json:"alert"`
	Name     string `json:"name"`
	// riskcode sai como string no relatório tradicional e como número em
	// alguns exports; aceita os dois
	RiskCode  any    `json:"riskcode"`
	RiskDesc  string `json:"riskdesc"`
	Instances []struct {
		URI   string `json:"uri"`
		Param string `json:"param"`
	} `json:"instances"`
}

func ParseZAPBytes(b []byte) ([]model.Finding, error) {
	var doc zapJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var out []model.Finding
	for _, site := range doc.Site {
		for _, raw := range site.Alerts {
			var a zapAlert
			if err := json.Unmarshal(raw, &a); err != nil {
				return nil, err
			}

			url, param := "alvo desconhecido", ""
			if len(a.Instances) > 0 {
				url = firstNonEmpty(a.Instances[0].URI, url)
				param = a.Instances[0].Param
			}

			token := riskToken(a.RiskCode, a.RiskDesc)
			out = append(out, model.Finding{
				Tool:        model.ToolZAP,
				RuleID:      firstNonEmpty(a.PluginID, a.Alert),
				Severity:    zapSeverity(token),
				RawSeverity: token,
				URL:         url,
				Param:       param,
				Message:     firstNonEmpty(a.Alert, firstNonEmpty(a.Name, "alerta ZAP")),
				Raw:         raw,
			})
		}
	}
	return out, nil
}

// riskToken prefere o riskcode; sem ele, cai para a primeira palavra do
// riskdesc (ex.: "High (Medium)" -> "High").
func riskToken(code any, desc string) string {
	switch v := code.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case float64:
		return strconv.Itoa(int(v))
	}
	fields := strings.Fields(desc)
	if len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func zapSeverity(token string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "3", "HIGH":
		return model.SevHigh
	case "2", "MEDIUM":
		return model.SevMedium
	case "1", "LOW":
		return model.SevLow
	case "0", "INFO", "INFORMATIONAL":
		return model.SevInfo
	default:
		return model.SevHigh
	}
}
