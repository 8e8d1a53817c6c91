package cmds

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-go-golems/parley/pkg/persona"
)

func NewPersonasCommand() *cobra.Command {
	var personasFile string

	cmd := &cobra.Command{
		Use:   "personas",
		Short: "List registered personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := persona.NewRegistry()
			if personasFile != "" {
				if err := registry.LoadFile(personasFile); err != nil {
					return err
				}
			}

			for _, name := range registry.Names() {
				prompt, err := registry.Get(name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, prompt)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&personasFile, "personas", "", "YAML file with additional persona definitions")

	return cmd
}
