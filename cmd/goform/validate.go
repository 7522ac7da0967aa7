package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/internal/watch"
	"github.com/reoring/goform/signup"
	"github.com/reoring/goform/source"
)

func newValidateCmd(a *app) *cobra.Command {
	var watchFile bool
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a record against the signup schema",
		Long:  `Loads a JSON or YAML record and prints its validation issues as JSON. Exits 1 when the record is invalid.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchFile {
				return runValidateWatch(cmd.Context(), a, cmd.OutOrStdout(), args[0])
			}
			return runValidate(cmd.Context(), a, cmd.OutOrStdout(), args[0])
		},
	}
	cmd.Flags().BoolVar(&watchFile, "watch", false, "Re-validate whenever the file changes")
	return cmd
}

func runValidate(ctx context.Context, a *app, w io.Writer, path string) error {
	schema, err := signup.Schema(a.now)
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	rec, err := source.ReadFile(path)
	if err != nil {
		return err
	}
	iss := schema.Validate(ctx, rec)
	a.logger.Debug().Str("file", path).Int("issues", len(iss)).Msg("validated")
	if err := writeReport(w, iss); err != nil {
		return err
	}
	if len(iss) > 0 {
		return errInvalid
	}
	return nil
}

// runValidateWatch validates once and again after every change, until ctx ends.
func runValidateWatch(ctx context.Context, a *app, w io.Writer, path string) error {
	revalidate := func(p string) {
		if err := runValidate(ctx, a, w, p); err != nil && !errors.Is(err, errInvalid) {
			a.logger.Error().Err(err).Str("file", p).Msg("validate failed")
		}
	}
	fw, err := watch.New(path, a.logger, revalidate)
	if err != nil {
		return err
	}
	revalidate(fw.Path())
	if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type issueView struct {
	Path    string `json:"path"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type report struct {
	Valid  bool        `json:"valid"`
	Issues []issueView `json:"issues"`
}

func writeReport(w io.Writer, iss goform.Issues) error {
	r := report{Valid: len(iss) == 0, Issues: make([]issueView, 0, len(iss))}
	for _, it := range iss {
		r.Issues = append(r.Issues, issueView{Path: it.Path, Field: it.Field(), Code: it.Code, Message: it.Message})
	}
	b, err := j.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
