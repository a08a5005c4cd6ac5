package adapters

import (
	"encoding/json"
	"path/filepath"

	"github.com/mindedal/solosec/internal/model"
)

// O gitleaks emite um array puro de vazamentos. Não existe severidade
// nativa: todo segredo vazado entra como HIGH e nunca suprime o gate.
type gitleaksLeak struct {
	RuleID    string `json:"RuleID"`
	File      string `json:"File"`
	StartLine int    `json:"StartLine"`
}

func ParseGitleaksBytes(b []byte) ([]model.Finding, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}

	out := make([]model.Finding, 0, len(items))
	for _, raw := range items {
		var l gitleaksLeak
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, err
		}
		rule := firstNonEmpty(l.RuleID, "regra-desconhecida")
		out = append(out, model.Finding{
			Tool:     model.ToolGitleaks,
			RuleID:   rule,
			Severity: model.SevHigh,
			File:     filepath.ToSlash(l.File),
			Line:     safeLine(l.StartLine),
			Message:  "Segredo detectado: " + rule,
			// Raw fica de fora de propósito: o registro original carrega o
			// segredo em claro e ele não pode vazar para o relatório final.
		})
	}
	return out, nil
}
