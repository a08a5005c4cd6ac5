package model

import (
	"encoding/json"
	"sort"
)

type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
	SevInfo     Severity = "INFO"
)

// Rank retorna a posição na escala canônica (INFO=0 ... CRITICAL=4).
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 4
	case SevHigh:
		return 3
	case SevMedium:
		return 2
	case SevLow:
		return 1
	default:
		return 0
	}
}

type Finding struct {
	Tool        string          `json:"tool"`                   // "trivy" | "semgrep" | "gitleaks" | "zap"
	RuleID      string          `json:"rule_id"`                // id/regra do scanner
	Severity    Severity        `json:"severity"`               // severidade normalizada
	RawSeverity string          `json:"raw_severity,omitempty"` // token original, se o scanner tiver um
	File        string          `json:"file,omitempty"`         // caminho relativo/normalizado
	Line        int             `json:"line,omitempty"`         // 1-based (0 = sem linha)
	URL         string          `json:"url,omitempty"`          // alvo do scanner dinâmico
	Param       string          `json:"param,omitempty"`        // parâmetro do alerta, se houver
	Message     string          `json:"message"`                // descrição curta
	Raw         json.RawMessage `json:"raw,omitempty"`          // entrada original, preservada para rastreio
}

type ToolStatus string

const (
	StatusOK          ToolStatus = "OK"
	StatusSkipped     ToolStatus = "SKIPPED"
	StatusUnavailable ToolStatus = "UNAVAILABLE"
	StatusParseError  ToolStatus = "PARSE_ERROR"
)

type ToolReport struct {
	Status   ToolStatus `json:"status"`
	Findings []Finding  `json:"findings"`
}

type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}

type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// FinalReport é o documento único gerado por uma agregação. O map de
// ferramentas sai ordenado alfabeticamente no JSON (encoding/json ordena
// as chaves), o que garante saída byte a byte idêntica entre execuções.
type FinalReport struct {
	Tools   map[string]ToolReport `json:"tools"`
	Summary Summary               `json:"summary"`
	Verdict Verdict               `json:"verdict"`
	Caveats []string              `json:"caveats,omitempty"`
}

// SortFindings ordena por severidade decrescente, depois caminho/URL,
// depois linha (sem linha vai por último), com rule_id como desempate.
func SortFindings(fs []Finding) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].Severity.Rank() != fs[j].Severity.Rank() {
			return fs[i].Severity.Rank() > fs[j].Severity.Rank()
		}
		li, lj := location(fs[i]), location(fs[j])
		if li != lj {
			return li < lj
		}
		if fs[i].Line != fs[j].Line {
			return lineKey(fs[i].Line) < lineKey(fs[j].Line)
		}
		return fs[i].RuleID < fs[j].RuleID
	})
}

func location(f Finding) string {
	if f.File != "" {
		return f.File
	}
	return f.URL
}

func lineKey(n int) int {
	if n <= 0 {
		return int(^uint(0) >> 1) // sem linha ordena por último
	}
	return n
}
