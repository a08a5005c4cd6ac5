package adapters

import (
	"testing"

	"github.com/mindedal/solosec/internal/model"
)

func TestParseTrivyBytes(t *testing.T) {
	sample := []byte(`{
  "Results": [
    {
      "Target": "go.mod",
      "Vulnerabilities": [
        {
          "VulnerabilityID": "CVE-2023-44487",
          "PkgName": "golang.org/x/net",
          "InstalledVersion": "0.1.0",
          "FixedVersion": "0.17.0",
          "Title": "HTTP/2 rapid reset",
          "Severity": "CRITICAL"
        }
      ]
    }
  ]
}`)

	findings, err := ParseTrivyBytes(sample)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(findings))
	}

	f := findings[0]
	if f.Tool != model.ToolTrivy {
		t.Errorf("esperado tool %q, obtido %q", model.ToolTrivy, f.Tool)
	}
	if f.RuleID != "CVE-2023-44487" {
		t.Errorf("esperado rule_id CVE-2023-44487, obtido %q", f.RuleID)
	}
	if f.Severity != model.SevCritical {
		t.Errorf("esperado CRITICAL, obtido %s", f.Severity)
	}
	if f.File != "go.mod" {
		t.Errorf("esperado file go.mod, obtido %q", f.File)
	}
	if f.Message != "golang.org/x/net 0.1.0 - HTTP/2 rapid reset (correção: 0.17.0)" {
		t.Errorf("mensagem inesperada: %q", f.Message)
	}
	if len(f.Raw) == 0 {
		t.Error("esperado raw preservado")
	}
}

func TestParseTrivyBytesWithoutFix(t *testing.T) {
	sample := []byte(`{
  "Results": [
    {
      "Target": "go.sum",
      "Vulnerabilities": [
        {"VulnerabilityID": "CVE-2024-9999", "PkgName": "acme", "InstalledVersion": "1.0.0", "Title": "RCE", "Severity": "HIGH"}
      ]
    }
  ]
}`)

	findings, err := ParseTrivyBytes(sample)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if findings[0].Message != "acme 1.0.0 - RCE (sem correção disponível)" {
		t.Errorf("mensagem inesperada: %q", findings[0].Message)
	}
}

func TestTrivySeverity(t *testing.T) {
	tests := []struct {
		in       string
		expected model.Severity
	}{
		{"CRITICAL", model.SevCritical},
		{"HIGH", model.SevHigh},
		{"MEDIUM", model.SevMedium},
		{"low", model.SevLow},
		{"UNKNOWN", model.SevLow},
		{"", model.SevLow},
		{"NEGLIGIBLE", model.SevHigh}, // token fora da tabela: conservador
	}

	for _, tt := range tests {
		if got := trivySeverity(tt.in); got != tt.expected {
			t.Errorf("trivySeverity(%q): esperado %s, obtido %s", tt.in, tt.expected, got)
		}
	}
}

func TestParseSemgrepBytes(t *testing.T) {
	sample := []byte(`{
  "results": [
    {
      "check_id": "go.lang.security.audit.xss.template-html",
      "path": "handlers/home.go",
      "start": {"line": 42},
      "end": {"line": 42},
      "extra": {
        "message": "uso de template sem escape",
        "severity": "ERROR"
      }
    }
  ]
}`)

	findings, err := ParseSemgrepBytes(sample)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(findings))
	}

	f := findings[0]
	if f.Severity != model.SevHigh {
		t.Errorf("esperado ERROR -> HIGH, obtido %s", f.Severity)
	}
	if f.RawSeverity != "ERROR" {
		t.Errorf("esperado raw_severity ERROR, obtido %q", f.RawSeverity)
	}
	if f.File != "handlers/home.go" || f.Line != 42 {
		t.Errorf("localização inesperada: %s:%d", f.File, f.Line)
	}
}

func TestSemgrepSeverity(t *testing.T) {
	tests := []struct {
		in       string
		expected model.Severity
	}{
		{"INFO", model.SevInfo},
		{"WARNING", model.SevMedium},
		{"warn", model.SevMedium},
		{"ERROR", model.SevHigh},
		{"EXPERIMENT", model.SevHigh}, // token fora da tabela: conservador
	}

	for _, tt := range tests {
		if got := semgrepSeverity(tt.in); got != tt.expected {
			t.Errorf("semgrepSeverity(%q): esperado %s, obtido %s", tt.in, tt.expected, got)
		}
	}
}

func TestParseGitleaksBytes(t *testing.T) {
	sample := []byte(`[
  {"RuleID": "aws-access-key", "File": "config/prod.env", "StartLine": 3, "Secret": "AKIA..."},
  {"RuleID": "generic-api-key", "File": "main.go", "StartLine": 17, "Secret": "sk-..."}
]`)

	findings, err := ParseGitleaksBytes(sample)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("esperado 2 findings, obtido %d", len(findings))
	}

	for _, f := range findings {
		if f.Severity != model.SevHigh {
			t.Errorf("todo vazamento deve ser HIGH, obtido %s", f.Severity)
		}
		if f.RawSeverity != "" {
			t.Errorf("gitleaks não tem severidade nativa, obtido %q", f.RawSeverity)
		}
		if len(f.Raw) != 0 {
			t.Error("raw de gitleaks carrega o segredo e não pode ir para o relatório")
		}
	}
	if findings[0].Message != "Segredo detectado: aws-access-key" {
		t.Errorf("mensagem inesperada: %q", findings[0].Message)
	}
	if findings[0].File != "config/prod.env" || findings[0].Line != 3 {
		t.Errorf("localização inesperada: %s:%d", findings[0].File, findings[0].Line)
	}
}

func TestParseGitleaksBytesWithoutRuleID(t *testing.T) {
	findings, err := ParseGitleaksBytes([]byte(`[{"File": "x.env", "StartLine": 1}]`))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	// rule_id e mensagem usam o mesmo token de fallback
	if findings[0].RuleID != "regra-desconhecida" {
		t.Errorf("esperado rule_id regra-desconhecida, obtido %q", findings[0].RuleID)
	}
	if findings[0].Message != "Segredo detectado: regra-desconhecida" {
		t.Errorf("mensagem inesperada: %q", findings[0].Message)
	}
}

func TestParseZAPBytes(t *testing.T) {
	sample := []byte(`{
  "site": [
    {
      "alerts": [
        {
          "pluginid": "40012",
          "alert": "Cross Site Scripting (Reflected)",
          "riskcode": "3",
          "riskdesc": "High (Medium)",
          "instances": [
            {"uri": "http://staging.local/busca", "param": "q"}
          ]
        },
        {
          "pluginid": "10021",
          "alert": "X-Content-Type-Options ausente",
          "riskcode": "1",
          "riskdesc": "Low (Medium)",
          "instances": [
            {"uri": "http://staging.local/", "param": ""}
          ]
        }
      ]
    }
  ]
}`)

	findings, err := ParseZAPBytes(sample)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("esperado 2 findings, obtido %d", len(findings))
	}

	if findings[0].Severity != model.SevHigh {
		t.Errorf("riskcode 3 deve virar HIGH, obtido %s", findings[0].Severity)
	}
	if findings[0].URL != "http://staging.local/busca" || findings[0].Param != "q" {
		t.Errorf("localização inesperada: %s param=%q", findings[0].URL, findings[0].Param)
	}
	if findings[0].RawSeverity != "3" {
		t.Errorf("esperado raw_severity 3, obtido %q", findings[0].RawSeverity)
	}
	if findings[1].Severity != model.SevLow {
		t.Errorf("riskcode 1 deve virar LOW, obtido %s", findings[1].Severity)
	}
}

func TestZapSeverity(t *testing.T) {
	tests := []struct {
		in       string
		expected model.Severity
	}{
		{"3", model.SevHigh},
		{"2", model.SevMedium},
		{"1", model.SevLow},
		{"0", model.SevInfo},
		{"High", model.SevHigh},
		{"medium", model.SevMedium},
		{"LOW", model.SevLow},
		{"Informational", model.SevInfo},
		{"4", model.SevHigh}, // token fora da tabela: conservador
		{"", model.SevHigh},
	}

	for _, tt := range tests {
		if got := zapSeverity(tt.in); got != tt.expected {
			t.Errorf("zapSeverity(%q): esperado %s, obtido %s", tt.in, tt.expected, got)
		}
	}
}

func TestParseRejectsTruncatedJSON(t *testing.T) {
	truncated := []byte(`{"results": [{"check_id": "x"`)

	if _, err := ParseSemgrepBytes(truncated); err == nil {
		t.Error("esperado erro para JSON truncado do semgrep")
	}
	if _, err := ParseTrivyBytes(truncated); err == nil {
		t.Error("esperado erro para JSON truncado do trivy")
	}
	if _, err := ParseGitleaksBytes([]byte(`{"nao": "array"}`)); err == nil {
		t.Error("esperado erro para shape inválido do gitleaks")
	}
	if _, err := ParseZAPBytes([]byte(`[]`)); err == nil {
		t.Error("esperado erro para shape inválido do zap")
	}
}

func TestRegistryCoversTheFourTools(t *testing.T) {
	got := Registered()
	expected := []string{"gitleaks", "semgrep", "trivy", "zap"}
	if len(got) != len(expected) {
		t.Fatalf("esperado %d ferramentas, obtido %d", len(expected), len(got))
	}
	for i, name := range expected {
		if got[i] != name {
			t.Errorf("posição %d: esperado %s, obtido %s", i, name, got[i])
		}
		if _, ok := Lookup(name); !ok {
			t.Errorf("ferramenta %s não registrada", name)
		}
	}
}
