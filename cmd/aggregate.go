package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mindedal/solosec/internal/adapters"
	"github.com/mindedal/solosec/internal/aggregator"
	"github.com/mindedal/solosec/internal/config"
	"github.com/mindedal/solosec/internal/logging"
	"github.com/mindedal/solosec/internal/model"
	"github.com/mindedal/solosec/internal/sarif"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var aggRoot string
var aggURL string
var aggSarifDir string
var aggDebug bool

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [dir-relatorios] [arquivo-saida]",
	Short: "Agrega os relatórios dos scanners em um relatório único e decide o veredito do gate",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(aggDebug)
		defer logging.Logger.Sync()

		reportDir, outPath := args[0], args[1]
		logging.Logger.Infof("Agregando relatórios de %s", reportDir)

		// A dica de habilitação vem da mesma configuração que o orquestrador
		// usou para decidir quais scanners pular.
		var enabled map[string]bool
		if aggRoot != "" {
			cfg, err := config.Resolve(aggRoot, aggURL)
			if err != nil {
				logging.Logger.Warnw("Arquivo de configuração ignorado, usando defaults", "erro", err)
			}
			enabled = cfg.EnabledHint()
		}

		report := aggregator.Run(reportDir, enabled)

		if err := aggregator.WriteReport(report, outPath); err != nil {
			// gate sem relatório é indistinguível de gate que nunca rodou
			logging.Logger.Errorw("Erro ao gravar relatório final", "erro", err)
			os.Exit(2)
		}
		logging.Logger.Infof("Gerado %s com %d achado(s)", outPath, report.Summary.Total)

		if aggSarifDir != "" {
			if path, err := sarif.Export(collectFindings(report), aggSarifDir, "solosec", "SoloSec", version); err != nil {
				logging.Logger.Warnw("Erro ao exportar SARIF", "erro", err)
			} else {
				logging.Logger.Infow("SARIF exportado", "arquivo", path)
			}
		}

		printSummary(report, outPath)

		if report.Verdict == model.VerdictFail {
			os.Exit(1)
		}
	},
}

func init() {
	aggregateCmd.Flags().StringVar(&aggRoot, "raiz", "", "Raiz do projeto, para ler o .solosec.yaml e distinguir SKIPPED de UNAVAILABLE")
	aggregateCmd.Flags().StringVarP(&aggURL, "url", "u", "", "URL alvo vinda da linha de comando (repassada ao resolver)")
	aggregateCmd.Flags().StringVar(&aggSarifDir, "sarif", "", "Diretório onde exportar também um relatório SARIF 2.1.0")
	aggregateCmd.Flags().BoolVar(&aggDebug, "debug", false, "Habilita logs em nível debug")
	rootCmd.AddCommand(aggregateCmd)
}

// collectFindings junta os achados das ferramentas OK na mesma ordem do
// relatório final (ferramenta alfabética, achados já ordenados).
func collectFindings(report model.FinalReport) []model.Finding {
	var out []model.Finding
	for _, tool := range adapters.Registered() {
		tr := report.Tools[tool]
		if tr.Status == model.StatusOK {
			out = append(out, tr.Findings...)
		}
	}
	return out
}

// Agrupamento por categoria para o resumo de terminal.
func categoryForTool(tool string) string {
	switch tool {
	case model.ToolGitleaks:
		return "Secrets"
	case model.ToolSemgrep:
		return "Code"
	case model.ToolTrivy:
		return "Deps"
	case model.ToolZAP:
		return "ZAP"
	}
	return "Other"
}

var breakdownOrder = []string{"Secrets", "Code", "Deps", "ZAP"}

func breakdownFor(report model.FinalReport, sev model.Severity) string {
	counts := map[string]int{}
	for _, tool := range adapters.Registered() {
		tr := report.Tools[tool]
		if tr.Status != model.StatusOK {
			continue
		}
		for _, f := range tr.Findings {
			if f.Severity == sev {
				counts[categoryForTool(f.Tool)]++
			}
		}
	}
	var parts []string
	for _, cat := range breakdownOrder {
		if counts[cat] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", cat, counts[cat]))
		}
	}
	return strings.Join(parts, ", ")
}

func printSummary(report model.FinalReport, outPath string) {
	line := strings.Repeat("-", 50)

	fmt.Println(line)
	color.New(color.FgCyan, color.Bold).Println("SCAN COMPLETO")
	fmt.Println(line)

	printRow(color.FgRed, "Critical:", report.Summary.Critical, breakdownFor(report, model.SevCritical))
	printRow(color.FgHiRed, "High:    ", report.Summary.High, breakdownFor(report, model.SevHigh))
	printRow(color.FgYellow, "Medium:  ", report.Summary.Medium, "")

	for _, caveat := range report.Caveats {
		color.New(color.FgYellow).Printf("Aviso: %s\n", caveat)
	}
	fmt.Println(line)

	if report.Verdict == model.VerdictFail {
		fmt.Printf("%s Problemas HIGH/CRITICAL encontrados. Veja %s\n", color.RedString("FAIL:"), outPath)
	} else {
		fmt.Printf("%s Nenhum problema HIGH/CRITICAL encontrado. Veja %s\n", color.GreenString("PASS:"), outPath)
	}
}

func printRow(attr color.Attribute, label string, count int, breakdown string) {
	suffix := ""
	if breakdown != "" {
		suffix = fmt.Sprintf("   (%s)", breakdown)
	}
	fmt.Printf("%s %d%s\n", color.New(attr).Sprint(label), count, suffix)
}
