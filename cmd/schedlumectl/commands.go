package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/app"
	"github.com/noah-isme/schedlume-api/internal/csvimport"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/migrations"
	"github.com/noah-isme/schedlume-api/pkg/storage"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a schedule CSV without touching the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			name := filepath.Base(args[0])
			out := cmd.OutOrStdout()

			if headers, err := csvimport.InspectHeaders(bytes.NewReader(body)); err == nil {
				printColumnWarnings(out, headers)
			}

			res := csvimport.NewValidator().ValidateReader(bytes.NewReader(body))
			if !res.Valid {
				for _, e := range res.Errors {
					fmt.Fprintln(out, e.String())
				}
				return fmt.Errorf("%s: %d problem(s) found", name, len(res.Errors))
			}
			fmt.Fprintf(out, "%s: %d class(es) ok\n", name, len(res.Schedules))
			opts.logger.Debug("validated", zap.Int("schedules", len(res.Schedules)))
			return nil
		},
	}
}

func printColumnWarnings(w io.Writer, headers csvimport.HeaderMap) {
	if len(headers.Ignored) > 0 {
		fmt.Fprintf(w, "ignored column(s): %s\n", strings.Join(headers.Ignored, ", "))
	}
	if len(headers.Duplicates) > 0 {
		fmt.Fprintf(w, "duplicate column(s), first one used: %s\n", strings.Join(headers.Duplicates, ", "))
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored schedule with the contents of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return opts.withServices(cmd.Context(), func(svc *app.Services) error {
				res, err := svc.Import.Import(cmd.Context(), filepath.Base(args[0]), f)
				if err != nil {
					if res != nil {
						printImportErrors(cmd.OutOrStdout(), res.Errors, res.RemainingErrors)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d class(es)\n", res.Imported)
				if res.OrphanOverrides > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%d override(s) no longer match a class\n", res.OrphanOverrides)
				}
				return nil
			})
		},
	}
}

func printImportErrors(w io.Writer, errs []csvimport.ValidationError, remaining int) {
	for _, e := range errs {
		fmt.Fprintln(w, e.String())
	}
	if remaining > 0 {
		fmt.Fprintf(w, "... and %d more\n", remaining)
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored schedule as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withServices(cmd.Context(), func(svc *app.Services) error {
				data, err := svc.Export.CSV(cmd.Context())
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				store, err := storage.NewLocalStorage(filepath.Dir(output))
				if err != nil {
					return err
				}
				path, err := store.Save(filepath.Base(output), data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (stdout when empty)")
	return cmd
}

func newDayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "Print the resolved classes of one date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd.Context(), func(svc *app.Services) error {
				day, _, err := svc.Timetable.Day(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printDay(cmd.OutOrStdout(), day)
				return nil
			})
		},
	}
}

func printDay(w io.Writer, day *models.DaySchedule) {
	fmt.Fprintf(w, "%s (%s)\n", day.Date, time.Weekday(day.Weekday))
	if len(day.Classes) == 0 {
		fmt.Fprintln(w, "  no classes")
		return
	}
	for _, c := range day.Classes {
		var flags []string
		switch {
		case c.IsCanceled:
			flags = append(flags, "canceled")
		case c.IsAdded:
			flags = append(flags, "added")
		case c.IsOverridden:
			flags = append(flags, "changed")
		}
		if c.HasNote {
			flags = append(flags, "note")
		}
		line := fmt.Sprintf("  %s-%s  %s", c.StartTime, c.EndTime, c.SubjectName)
		if c.Location != nil && *c.Location != "" {
			line += " @ " + *c.Location
		}
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}

func newRemindCmd(opts *rootOptions) *cobra.Command {
	var (
		date string
		send bool
	)
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "List due-date reminders, or deliver them with --send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withServices(cmd.Context(), func(svc *app.Services) error {
				out := cmd.OutOrStdout()
				if send {
					n, err := svc.Reminders.Check(cmd.Context(), time.Now())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "delivered %d reminder(s)\n", n)
					return nil
				}
				reminders, err := svc.Reminders.Preview(cmd.Context(), date)
				if err != nil {
					return err
				}
				if len(reminders) == 0 {
					fmt.Fprintln(out, "no reminders")
				}
				for _, r := range reminders {
					shown := ""
					if r.AlreadyShown {
						shown = " (shown)"
					}
					fmt.Fprintf(out, "%s  %s%s\n", r.DueDate, r.Message, shown)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "evaluate reminders as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&send, "send", false, "deliver due reminders now instead of listing them")
	cmd.MarkFlagsMutuallyExclusive("date", "send")
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Up(cmd.Context(), db.DB)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "applied", name)
			}
			return nil
		},
	}
}

const backupPattern = "schedlume-backup-*.json"

func newBackupCmd(opts *rootOptions) *cobra.Command {
	var (
		dir    string
		retain time.Duration
	)
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a JSON snapshot of all data and prune old snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.NewLocalStorage(dir)
			if err != nil {
				return err
			}
			return opts.withServices(cmd.Context(), func(svc *app.Services) error {
				backup, err := svc.Backup.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(backup, "", "  ")
				if err != nil {
					return fmt.Errorf("encode backup: %w", err)
				}
				name := backupFileName(backup.ExportedAt)
				path, err := store.Save(name, data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

				if retain <= 0 {
					return nil
				}
				pruned, err := store.CleanupOlderThan(backupPattern, retain)
				if err != nil {
					return err
				}
				for _, old := range pruned {
					opts.logger.Info("backup pruned", zap.String("file", old))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "backups", "directory receiving snapshots")
	cmd.Flags().DurationVar(&retain, "retain", 30*24*time.Hour, "delete snapshots older than this (0 keeps all)")
	return cmd
}

func backupFileName(at time.Time) string {
	return "schedlume-backup-" + at.UTC().Format("20060102-150405") + ".json"
}
