package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/survey"
)

func newCatalogCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "catalog <followup|opinion>",
		Short: "Print a survey question catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := survey.LoadRegistry()
			if err != nil {
				return err
			}
			c, err := registry.Catalog(models.SurveyKind(strings.ToLower(args[0])))
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(output) {
			case "yaml", "":
				data, err = yaml.Marshal(c)
			case "json":
				data, err = json.MarshalIndent(c, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown output %q (want yaml or json)", output)
			}
			if err != nil {
				return fmt.Errorf("encode catalog: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&output, "output", "yaml", "yaml or json")
	return cmd
}
