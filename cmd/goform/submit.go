package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/form"
	"github.com/reoring/goform/signup"
	"github.com/reoring/goform/source"
)

func newSubmitCmd(a *app) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "submit [FILE]",
		Short: "Fill the signup form from a record and submit it",
		Long:  `Applies the record (or the sample data with --seed) to a fresh signup form and submits it. Prints the confirmation summary on success.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !seed && len(args) == 0 {
				return fmt.Errorf("submit: FILE is required unless --seed is set")
			}
			var rec goform.Record
			if seed {
				rec = signup.SampleData()
			} else {
				r, err := source.ReadFile(args[0])
				if err != nil {
					return err
				}
				rec = r
			}
			return runSubmit(cmd.Context(), a, cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Submit the built-in sample data instead of a file")
	return cmd
}

func runSubmit(ctx context.Context, a *app, w io.Writer, rec goform.Record) error {
	schema, err := signup.Schema(a.now)
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	ctl := form.New(schema, signup.Defaults(a.now()),
		form.WithLogger(a.logger),
		form.WithValidateOn(a.cfg.Mode()),
	)
	if err := ctl.SetValues(rec); err != nil {
		return fmt.Errorf("apply record: %w", err)
	}

	_, err = ctl.Submit(ctx, func(_ context.Context, values goform.Record) error {
		_, err := fmt.Fprintln(w, signup.Summary(values))
		return err
	})
	if iss, ok := goform.AsIssues(err); ok {
		if err := writeReport(w, iss); err != nil {
			return err
		}
		return errInvalid
	}
	return err
}
