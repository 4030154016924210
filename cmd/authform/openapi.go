package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	authform "github.com/goliatone/go-authform"
	"github.com/goliatone/go-authform/pkg/openapi"
)

func openapiCmd(a *app) *cobra.Command {
	var (
		output  string
		servers []string
		indent  bool
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document describing the page routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := []openapi.Option{openapi.WithVersion(Version)}
			for _, url := range servers {
				options = append(options, openapi.WithServer(url))
			}
			doc, err := openapi.Build(cmd.Context(), authform.Pages().All(), options...)
			if err != nil {
				return err
			}

			raw, err := doc.MarshalJSON()
			if err != nil {
				return fmt.Errorf("openapi: encode: %w", err)
			}
			if indent {
				var buf bytes.Buffer
				if err := json.Indent(&buf, raw, "", "  "); err != nil {
					return fmt.Errorf("openapi: indent: %w", err)
				}
				raw = buf.Bytes()
			}
			raw = append(raw, '\n')

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := os.WriteFile(output, raw, 0o644); err != nil {
				return fmt.Errorf("openapi: write %s: %w", output, err)
			}
			a.log().Info("openapi document written", zap.String("path", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringArrayVar(&servers, "server", nil, "server URL to list in the document (repeatable)")
	cmd.Flags().BoolVar(&indent, "indent", true, "indent the JSON output")
	return cmd
}
