package main

import (
	"fmt"
	"os"
	"sort"

	"cansat-dashboard.klederson.com/internal/archive"
	"cansat-dashboard.klederson.com/internal/chart"
	"cansat-dashboard.klederson.com/internal/config"
	"cansat-dashboard.klederson.com/internal/telemetry"
	"github.com/spf13/cobra"
)

// openArchive opens an existing archive for reading.
func openArchive(path string) (*archive.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	return archive.Open(path, "")
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions ARCHIVE",
		Short: "List the sessions recorded in a SQLite archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openArchive(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			sessions, err := db.Sessions()
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(sessions))
			for id := range sessions {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			out := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintf(out, "%s\t%d ticks\n", id, sessions[id])
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var dir, format string
	cmd := &cobra.Command{
		Use:   "export ARCHIVE SESSION",
		Short: "Render the charts of a recorded session to image files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := chart.ParseFormat(format)
			if err != nil {
				return err
			}
			db, err := openArchive(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			session := args[1]
			sessions, err := db.Sessions()
			if err != nil {
				return err
			}
			if _, ok := sessions[session]; !ok {
				return fmt.Errorf("session %q not found in %s", session, args[0])
			}

			out := cmd.OutOrStdout()
			for _, ch := range telemetry.Channels {
				xs, ys, err := db.Series(session, ch)
				if err != nil {
					return err
				}
				label := ch.Title()
				if u := ch.Unit(); u != "" {
					label += " (" + u + ")"
				}
				path, err := chart.ExportAs(f, dir, session, xs, ys, ch.Title(), "Time", label)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", config.DefaultExportDir, "Output directory")
	cmd.Flags().StringVar(&format, "format", config.DefaultExportFormat, "png or svg")
	return cmd
}
