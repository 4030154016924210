package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	authform "github.com/goliatone/go-authform"
	"github.com/goliatone/go-authform/pkg/render"
)

func renderCmd(a *app) *cobra.Command {
	var (
		renderer  string
		themeName string
		variant   string
		values    string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "render <form>",
		Short: "Render a page to a file or stdout",
		Long: "Render the sign-in or sign-up page with the selected renderer.\n" +
			"With --values the payload is validated first and its errors are rendered inline.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := authform.Pages().Get(args[0])
			if err != nil {
				return err
			}

			overrides, err := iconOverrides(a.cfg.Assets.IconsDir)
			if err != nil {
				return err
			}
			set, err := iconSet(overrides)
			if err != nil {
				return err
			}
			registry, err := renderers(a.cfg, set)
			if err != nil {
				return err
			}
			r, err := registry.Get(renderer)
			if err != nil {
				return err
			}

			var opts render.RenderOptions
			if values != "" {
				state, err := readPayload(values, cmd.InOrStdin())
				if err != nil {
					return err
				}
				opts = render.FromResult(state, page.Schema.Validate(state))
			}

			selector, err := themeSelector(a.cfg)
			if err != nil {
				return err
			}
			opts.Theme, err = selector.Resolve(themeName, variant, nil)
			if err != nil {
				return err
			}

			out, err := r.Render(cmd.Context(), page, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", page.ID, err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("render: write %s: %w", output, err)
			}
			a.log().Info("page rendered",
				zap.String("form", page.ID),
				zap.String("renderer", r.Name()),
				zap.String("path", output),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&renderer, "renderer", "r", "vanilla", "renderer to use (vanilla, json)")
	cmd.Flags().StringVar(&themeName, "theme", "", "theme name (defaults to theme.name)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant")
	cmd.Flags().StringVar(&values, "values", "", "YAML or JSON payload to prefill and validate (\"-\" for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
