package model

// Identificadores fixos das quatro ferramentas externas.
const (
	ToolTrivy    = "trivy"    // scanner de dependências/IaC
	ToolSemgrep  = "semgrep"  // análise estática
	ToolGitleaks = "gitleaks" // scanner de segredos
	ToolZAP      = "zap"      // scanner dinâmico
)

// AllTools retorna os identificadores em ordem alfabética.
func AllTools() []string {
	return []string{ToolGitleaks, ToolSemgrep, ToolTrivy, ToolZAP}
}
