// Package aggregator lê os relatórios brutos deixados pelos scanners,
// normaliza cada um no schema canônico e fecha o veredito do gate.
package aggregator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mindedal/solosec/internal/adapters"
	"github.com/mindedal/solosec/internal/model"
)

// Run monta o FinalReport a partir do diretório de relatórios. enabled é a
// dica opcional de habilitação vinda da configuração: só desambigua arquivo
// ausente (SKIPPED x UNAVAILABLE); sem dica, ausente conta como UNAVAILABLE.
// Arquivo presente é sempre interpretado, mesmo de ferramenta desabilitada —
// relatório velho que sobrou de outra execução aparece, não some.
func Run(reportDir string, enabled map[string]bool) model.FinalReport {
	report := model.FinalReport{
		Tools: make(map[string]model.ToolReport, 4),
	}

	okTools := 0
	for _, tool := range adapters.Registered() {
		norm, _ := adapters.Lookup(tool)

		data, err := os.ReadFile(filepath.Join(reportDir, norm.Filename))
		if err != nil {
			status := model.StatusUnavailable
			if on, ok := enabled[tool]; ok && !on {
				status = model.StatusSkipped
			}
			report.Tools[tool] = model.ToolReport{Status: status, Findings: []model.Finding{}}
			continue
		}

		findings, err := norm.Parse(data)
		if err != nil {
			// arquivo truncado/inválido não derruba as outras ferramentas
			report.Tools[tool] = model.ToolReport{Status: model.StatusParseError, Findings: []model.Finding{}}
			continue
		}
		if findings == nil {
			findings = []model.Finding{}
		}
		model.SortFindings(findings)
		report.Tools[tool] = model.ToolReport{Status: model.StatusOK, Findings: findings}
		okTools++

		for _, f := range findings {
			switch f.Severity {
			case model.SevCritical:
				report.Summary.Critical++
			case model.SevHigh:
				report.Summary.High++
			case model.SevMedium:
				report.Summary.Medium++
			case model.SevLow:
				report.Summary.Low++
			default:
				report.Summary.Info++
			}
			report.Summary.Total++
		}
	}

	// Só achado HIGH/CRITICAL reprova; status de ferramenta nunca reprova
	// sozinho, mas fica visível nos caveats.
	report.Verdict = model.VerdictPass
	if report.Summary.Critical+report.Summary.High > 0 {
		report.Verdict = model.VerdictFail
	}
	report.Caveats = caveats(report.Tools, okTools)

	return report
}

func caveats(tools map[string]model.ToolReport, okTools int) []string {
	var out []string
	for _, tool := range adapters.Registered() {
		switch tools[tool].Status {
		case model.StatusSkipped:
			out = append(out, tool+": desabilitado pela configuração")
		case model.StatusUnavailable:
			out = append(out, tool+": relatório esperado não encontrado")
		case model.StatusParseError:
			out = append(out, tool+": relatório inválido ou truncado")
		}
	}
	if okTools == 0 {
		out = append(out, "nenhum scanner produziu relatório legível; veredito baseado em ausência de evidências")
	}
	return out
}

// WriteReport grava o FinalReport em JSON indentado. É o único caminho
// fatal do núcleo: gate sem relatório é indistinguível de gate que nunca
// rodou, então falha aqui precisa virar exit não-zero no chamador.
func WriteReport(report model.FinalReport, outPath string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar relatório final: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("criar diretório de saída: %w", err)
		}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("escrever relatório final: %w", err)
	}
	return nil
}
