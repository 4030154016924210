package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	authform "github.com/goliatone/go-authform"
	"github.com/goliatone/go-authform/pkg/openapi"
	"github.com/goliatone/go-authform/pkg/pages"
)

// errInvalidPayload makes the command exit non-zero after the problems were
// printed.
var errInvalidPayload = errors.New("payload is invalid")

type validateReport struct {
	Form     string            `json:"form"`
	Valid    bool              `json:"valid"`
	Errors   map[string]string `json:"errors,omitempty"`
	Contract string            `json:"contract,omitempty"`
}

func validateCmd(a *app) *cobra.Command {
	var (
		asJSON   bool
		contract bool
	)

	cmd := &cobra.Command{
		Use:   "validate <form> [file]",
		Short: "Validate a YAML or JSON payload against a form schema",
		Long: "Validate a flat YAML or JSON mapping of field values against the sign-in or sign-up schema.\n" +
			"The payload is read from stdin when file is omitted or \"-\".",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := authform.Pages().Get(args[0])
			if err != nil {
				return err
			}
			var path string
			if len(args) == 2 {
				path = args[1]
			}
			state, err := readPayload(path, cmd.InOrStdin())
			if err != nil {
				return err
			}

			report := validateReport{Form: page.ID}
			result := page.Schema.Validate(state)
			report.Valid = result.Valid()
			report.Errors = result.Errors

			if contract {
				doc, err := openapi.Build(cmd.Context(), []pages.Page{page})
				if err != nil {
					return err
				}
				if err := doc.ValidatePayload(openapi.SubmitOperationID(page.ID), state); err != nil {
					report.Valid = false
					report.Contract = err.Error()
				}
			}

			a.log().Debug("payload validated",
				zap.String("form", page.ID),
				zap.Bool("valid", report.Valid),
				zap.Int("errors", len(report.Errors)),
			)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else if err := writeReport(cmd.OutOrStdout(), page, report); err != nil {
				return err
			}
			if !report.Valid {
				return errInvalidPayload
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&contract, "contract", false, "also check the payload against the OpenAPI request schema")
	return cmd
}

func writeReport(w io.Writer, page pages.Page, report validateReport) error {
	if report.Valid {
		_, err := fmt.Fprintf(w, "%s: valid\n", page.ID)
		return err
	}
	for _, name := range page.Schema.FieldNames() {
		message, ok := report.Errors[name]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, message); err != nil {
			return err
		}
	}
	if report.Contract != "" {
		if _, err := fmt.Fprintf(w, "contract: %s\n", report.Contract); err != nil {
			return err
		}
	}
	return nil
}
