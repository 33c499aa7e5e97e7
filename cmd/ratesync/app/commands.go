package app

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/openbenefits/ratesync/internal/pipeline"
	"github.com/openbenefits/ratesync/pkg/errors"
	"github.com/openbenefits/ratesync/pkg/logging"
	"github.com/openbenefits/ratesync/pkg/merge"
	"github.com/openbenefits/ratesync/pkg/rates"
	"github.com/openbenefits/ratesync/pkg/validate"
)

// NewUpdateCommand creates the update command with app dependencies.
func (a *App) NewUpdateCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Fetch current rates from GOV.UK and update the store",
		Long: `Update fetches every benefit page through the GOV.UK Content API,
extracts the current rates, merges them into the existing store, and
writes the result if validation passes.

A run where no stored value changes is a successful no-op and leaves
the store untouched. With --dry-run the full fetch, merge, and
validation sequence runs but nothing is ever written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), a.logger)
			summary, err := pipeline.Run(ctx, pipeline.Options{
				StorePath: a.config.StorePath,
				Client:    a.Client(),
				DryRun:    dryRun,
			})
			if err != nil {
				// A rejected validation reports every finding, not
				// just the count.
				var validationErr *errors.ValidationFailedError
				if errors.As(err, &validationErr) {
					for _, warning := range validationErr.Warnings {
						cmd.Printf("warning: %s\n", warning)
					}
					for _, finding := range validationErr.Errors {
						cmd.Printf("error: %s\n", finding)
					}
				}
				return err
			}

			cmd.Printf("Tax year %s: %d changed, %d unchanged, %d new, %d kept\n",
				summary.TaxYear, summary.Stats.Changed, summary.Stats.Unchanged,
				summary.Stats.New, summary.Stats.Kept)
			for _, event := range summary.Events {
				switch event.Type {
				case merge.ChangeUpdated:
					cmd.Printf("  %s: %s %v -> %v\n",
						event.Benefit.DisplayName(), event.Path, event.Old, event.New)
				case merge.ChangeNew:
					cmd.Printf("  %s: %s = %v (new)\n",
						event.Benefit.DisplayName(), event.Path, event.New)
				}
			}
			switch {
			case summary.Written:
				cmd.Printf("Store updated: %s\n", a.config.StorePath)
			case dryRun && summary.Stats.Changed > 0:
				cmd.Println("Dry run: store not written")
			default:
				cmd.Println("No changes: store not written")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "fetch, merge, and validate without writing the store")

	return cmd
}

// NewValidateCommand creates the validate command with app dependencies.
func (a *App) NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the existing rate store",
		Long: `Validate checks the stored rates without fetching anything: the
tax year must be well formed and consecutive, and every value must be
positive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := rates.Load(a.config.StorePath)
			if err != nil {
				return err
			}

			result := validate.Check(file.Rates, file.Rates, file.TaxYear)
			for _, warning := range result.Warnings {
				cmd.Printf("warning: %s\n", warning)
			}
			for _, finding := range result.Errors {
				cmd.Printf("error: %s\n", finding)
			}
			if !result.Valid {
				return errors.NewValidationFailedError(result.Errors, result.Warnings)
			}

			cmd.Printf("Store is valid: %s (tax year %s, %d grouped benefits)\n",
				a.config.StorePath, file.TaxYear, len(file.Rates.Benefits()))
			return nil
		},
	}
}

// NewShowCommand creates the show command with app dependencies.
func (a *App) NewShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current rate store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := rates.Load(a.config.StorePath)
			if err != nil {
				return err
			}

			out, err := render(file, format)
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json, yaml")

	return cmd
}

// render marshals the store in the requested format.
func render(file *rates.File, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml":
		// Route through JSON so the store's custom marshalling applies.
		out, err := json.Marshal(file)
		if err != nil {
			return nil, err
		}
		return yaml.JSONToYAML(out)
	default:
		return nil, fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("ratesync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit: %s\n", a.commit)
				cmd.Printf("  built:  %s\n", a.date)
			}
		},
	}
}
