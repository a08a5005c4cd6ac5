package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mindedal/solosec/internal/config"
	"github.com/mindedal/solosec/internal/logging"
	"github.com/spf13/cobra"
)

var cfgURL string
var cfgFormat string
var cfgFile string
var cfgDebug bool

var configCmd = &cobra.Command{
	Use:   "config [raiz]",
	Short: "Resolve o .solosec.yaml da raiz do projeto com o override de linha de comando",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(cfgDebug)
		defer logging.Logger.Sync()

		var cfg config.Config
		var err error
		if cfgFile != "" {
			cfg, err = config.ResolveFile(cfgFile, cfgURL)
		} else {
			cfg, err = config.Resolve(args[0], cfgURL)
		}
		if err != nil {
			// configuração malformada nunca aborta: segue com defaults
			logging.Logger.Warnw("Arquivo de configuração ignorado, usando defaults", "erro", err)
		}

		switch strings.ToLower(cfgFormat) {
		case "bash":
			fmt.Print(cfg.EncodeBash())
		case "json", "":
			encoded, err := cfg.EncodeJSON()
			if err != nil {
				logging.Logger.Errorw("Erro ao gerar JSON", "erro", err)
				os.Exit(1)
			}
			fmt.Println(string(encoded))
		default:
			logging.Logger.Errorf("Formato '%s' não suportado (use json ou bash)", cfgFormat)
			os.Exit(1)
		}
	},
}

func init() {
	configCmd.Flags().StringVarP(&cfgURL, "url", "u", "", "URL alvo vinda da linha de comando (vence a do arquivo)")
	configCmd.Flags().StringVarP(&cfgFormat, "format", "f", "json", "Formato da saída (json, bash)")
	configCmd.Flags().StringVar(&cfgFile, "arquivo", "", "Caminho explícito do arquivo de configuração")
	configCmd.Flags().BoolVar(&cfgDebug, "debug", false, "Habilita logs em nível debug")
	rootCmd.AddCommand(configCmd)
}
