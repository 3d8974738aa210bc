package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrlokans/librarydesk/internal/config"
	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/entrypoint"
	"github.com/mrlokans/librarydesk/internal/tasks"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			entrypoint.Run(config.NewConfig(), Version)
		},
	}

	root := &cobra.Command{
		Use:           "librarydesk",
		Short:         "Library desk: books, members and borrowing in one place",
		SilenceUsage:  true,
		SilenceErrors: false,
		// No subcommand runs the server
		Run: serve.Run,
	}

	root.AddCommand(
		serve,
		newOverdueCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "librarydesk %s (%s)\n", Version, Commit)
			},
		},
	)
	return root
}

func newOverdueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List borrowed books that are past their due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			core, err := entrypoint.NewCore(ctx, config.NewConfig())
			if err != nil {
				return err
			}
			defer core.Close()

			overdue := tasks.NewOverdueScanner(core.Library, core.Metrics, core.Audit).Scan(ctx)
			if len(overdue) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing is overdue.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBOOK\tMEMBER\tDUE")
			for _, tx := range overdue {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", tx.ID, orNA(tx.BookTitle), orNA(tx.MemberName), tx.DueDate.Format(entities.DueDateLayout))
			}
			return w.Flush()
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
