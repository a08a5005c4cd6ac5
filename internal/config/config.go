// Package config resolve o .solosec.yaml da raiz do projeto com o override
// de linha de comando em uma única configuração imutável.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mindedal/solosec/internal/model"
	"gopkg.in/yaml.v3"
)

// settingsFile espelha o shape do .solosec.yaml.
type settingsFile struct {
	TargetURL   string          `yaml:"target_url"`
	URL         string          `yaml:"url"` // alias aceito por compatibilidade
	ExcludeDirs []string        `yaml:"exclude_dirs"`
	Tools       map[string]bool `yaml:"tools"`
}

// Config é o valor mesclado. Imutável depois de Resolve; nunca persistido.
type Config struct {
	URL         string          `json:"url"`
	ExcludeDirs []string        `json:"exclude_dirs"`
	Tools       map[string]bool `json:"tools"`
}

// Defaults retorna a configuração padrão: quatro ferramentas habilitadas,
// sem exclusões, URL vinda só da linha de comando.
func Defaults(cliURL string) Config {
	tools := make(map[string]bool, 4)
	for _, t := range model.AllTools() {
		tools[t] = true
	}
	return Config{
		URL:         strings.TrimSpace(cliURL),
		ExcludeDirs: []string{},
		Tools:       tools,
	}
}

// Resolve procura .solosec.yaml (ou .solosec.yml) na raiz informada e mescla
// com o valor de linha de comando. Arquivo ausente não é erro; arquivo
// malformado retorna os defaults E um erro que o chamador deve tratar como
// warning — nunca aborta a execução.
func Resolve(root, cliURL string) (Config, error) {
	for _, name := range []string{".solosec.yaml", ".solosec.yml"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return ResolveFile(path, cliURL)
	}
	return Defaults(cliURL), nil
}

// ResolveFile mescla um arquivo de configuração explícito com o valor de
// linha de comando.
func ResolveFile(path, cliURL string) (Config, error) {
	cfg := Defaults(cliURL)

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("ler %s: %w", path, err)
	}
	var raw settingsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("interpretar %s: %w", path, err)
	}

	// URL da linha de comando vence incondicionalmente.
	if cfg.URL == "" {
		fileURL := strings.TrimSpace(raw.TargetURL)
		if fileURL == "" {
			fileURL = strings.TrimSpace(raw.URL)
		}
		cfg.URL = fileURL
	}

	for _, dir := range raw.ExcludeDirs {
		if strings.TrimSpace(dir) != "" {
			cfg.ExcludeDirs = append(cfg.ExcludeDirs, dir)
		}
	}

	// Só as quatro ferramentas conhecidas; chaves estranhas são ignoradas.
	for name, enabled := range raw.Tools {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := cfg.Tools[key]; ok {
			cfg.Tools[key] = enabled
		}
	}

	// Com o zap desabilitado não faz sentido emitir URL, venha de onde vier.
	if !cfg.Tools[model.ToolZAP] {
		cfg.URL = ""
	}

	return cfg, nil
}

// EnabledHint devolve o mapa de habilitação efetivo para o agregador. Sem
// URL alvo o orquestrador não tem como invocar o scanner dinâmico, então o
// zap conta como desabilitado mesmo que o arquivo não o desligue.
func (c Config) EnabledHint() map[string]bool {
	hint := make(map[string]bool, len(c.Tools))
	for name, on := range c.Tools {
		hint[name] = on
	}
	if c.URL == "" {
		hint[model.ToolZAP] = false
	}
	return hint
}

// EncodeJSON serializa a forma estruturada, consumível por chamadores que
// interpretam JSON.
func (c Config) EncodeJSON() ([]byte, error) {
	return json.Marshal(c)
}

// EncodeBash serializa a forma plana NOME=valor, segura para eval em shell.
func (c Config) EncodeBash() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SOLOSEC_URL=%s\n", bashQuote(c.URL))
	fmt.Fprintf(&b, "SOLOSEC_EXCLUDE_DIRS=%s\n", bashQuote(strings.Join(c.ExcludeDirs, ",")))

	names := make([]string, 0, len(c.Tools))
	for name := range c.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := "0"
		if c.Tools[name] {
			v = "1"
		}
		fmt.Fprintf(&b, "SOLOSEC_TOOL_%s=%s\n", strings.ToUpper(name), v)
	}
	return b.String()
}

func bashQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
