package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "solosec",
	Short: "SoloSec - Gate de Segurança para CI (Trivy, Semgrep, Gitleaks, ZAP)",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
