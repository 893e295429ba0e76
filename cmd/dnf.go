package cmd

import (
	"fmt"

	"github.com/SerafimArts/algebraic-types/manifest"
	"github.com/spf13/cobra"
)

var DNFCmd = &cobra.Command{
	Use:          "dnf manifest.yaml TypeName",
	Short:        "Print the canonical disjunctive normal form of a declared type",
	RunE:         runDNF,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var dnfNamespace *string

func init() {
	dnfNamespace = DNFCmd.Flags().StringP("namespace", "n", "", "namespace to resolve the name from")
}

func runDNF(cmd *cobra.Command, args []string) error {
	doc, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	reg, errs := doc.Build()
	if errs.HasError() {
		return fmt.Errorf("manifest did not load cleanly:\n%s", formatAll(errs))
	}
	canonical, err := reg.Canonical(args[1], *dnfNamespace)
	if err != nil {
		return err
	}
	fmt.Println(canonical)
	return nil
}
