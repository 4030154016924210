package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	authform "github.com/goliatone/go-authform"
	"github.com/goliatone/go-authform/pkg/renderers/tui"
)

func promptCmd(a *app) *cobra.Command {
	var attempts int

	cmd := &cobra.Command{
		Use:       "prompt <form>",
		Short:     "Fill in a form from the terminal",
		Long:      "Prompt for every field of the sign-in or sign-up form until the submission is valid.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"sign-in", "sign-up"},
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := authform.Pages().Get(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("attempts") {
				a.cfg.Prompt.MaxAttempts = attempts
			}

			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.OutOrStdout())
			}
			session := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithLogger(a.log()),
				tui.WithMaxAttempts(a.cfg.Prompt.MaxAttempts),
			)

			outcome, err := session.Run(cmd.Context(), page)
			switch {
			case errors.Is(err, tui.ErrAborted):
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return nil
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: submitted after %d attempt(s)", page.ID, outcome.Attempts)
			if page.RememberMe {
				fmt.Fprintf(cmd.OutOrStdout(), ", remember me: %t", outcome.Remember)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVar(&attempts, "attempts", 0, "maximum number of submissions (overrides prompt.max_attempts)")
	return cmd
}
