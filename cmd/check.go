package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SerafimArts/algebraic-types/internal/log"
	"github.com/SerafimArts/algebraic-types/manifest"
	"github.com/SerafimArts/algebraic-types/typerr"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check manifest.yaml",
	Short:        "Check every override pair in a manifest for variance violations",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var logLevel *int

func init() {
	logLevel = CheckCmd.PersistentFlags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	doc, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	reg, errs := doc.Build()
	errs = errs.Merge(doc.Check(reg))

	if errs.HasError() {
		return fmt.Errorf("problems found:\n%s", formatAll(errs))
	}
	fmt.Printf("checked %d override pair(s): all sound\n", len(doc.Overrides))
	return nil
}

func formatAll(errs *typerr.Errors) string {
	sb := &strings.Builder{}
	for _, e := range errs.Errors() {
		sb.WriteString("  ")
		sb.WriteString(typerr.FormatWithCode(e))
		sb.WriteString("\n")
	}
	return sb.String()
}
