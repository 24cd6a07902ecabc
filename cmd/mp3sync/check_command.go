package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mp3sync/internal/deps"
	"mp3sync/internal/syncpaths"
)

var errCheckFailed = errors.New("one or more checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [source_dir dest_dir relative_dir]",
		Short: "Verify external tools and directory access",
		Long: "Verify that the flac decoder and lame encoder can be found.\n" +
			"When directories are given, also verify the source is readable and\n" +
			"the destination and temp directory are writable.",
		Args: syncArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var rows [][]string
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			for _, s := range statuses {
				rows = append(rows, []string{s.Name, s.Command, passLabel(s.Available), s.Detail})
			}
			failed := deps.MissingRequired(statuses)

			if len(args) == 3 {
				dirs, err := syncpaths.Resolve(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				checks := []deps.DirStatus{
					deps.CheckDirectory("Source directory", dirs.Source, deps.Readable, false),
					deps.CheckDirectory("Destination directory", dirs.Dest, deps.Writable, true),
					deps.CheckDirectory("Temp directory", cfg.TempDir(), deps.Writable, false),
				}
				for _, c := range checks {
					rows = append(rows, []string{c.Name, c.Path, passLabel(c.Passed), c.Detail})
					failed = failed || !c.Passed
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Target", "Status", "Detail"}, rows))
			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
}

func passLabel(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAILED"
}
