package adapters

import (
	"sort"

	"github.com/mindedal/solosec/internal/model"
)

// Normalizer liga um identificador de ferramenta ao nome fixo do seu
// relatório bruto e à função que converte o shape nativo em Findings
// canônicos. Ferramenta nova = um normalizer novo, o loop do agregador
// não muda.
type Normalizer struct {
	Filename string
	Parse    func([]byte) ([]model.Finding, error)
}

var normalizers = map[string]Normalizer{
	model.ToolTrivy:    {Filename: "trivy.json", Parse: ParseTrivyBytes},
	model.ToolSemgrep:  {Filename: "semgrep.json", Parse: ParseSemgrepBytes},
	model.ToolGitleaks: {Filename: "gitleaks.json", Parse: ParseGitleaksBytes},
	model.ToolZAP:      {Filename: "zap.json", Parse: ParseZAPBytes},
}

// Lookup retorna o normalizer da ferramenta, se registrada.
func Lookup(tool string) (Normalizer, bool) {
	n, ok := normalizers[tool]
	return n, ok
}

// Registered retorna os identificadores registrados em ordem alfabética.
func Registered() []string {
	names := make([]string, 0, len(normalizers))
	for name := range normalizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
