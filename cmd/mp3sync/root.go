package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mp3sync/internal/logging"
	"mp3sync/internal/syncer"
	"mp3sync/internal/toolexec"
	"mp3sync/internal/transcode"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &overrides{}

	ctx := newCommandContext(&configFlag, flags)

	rootCmd := &cobra.Command{
		Use:   "mp3sync [flags] source_dir dest_dir relative_dir",
		Short: "Sync FLAC files from one dir to MP3 files in another",
		Long: "Sync FLAC files from one dir to MP3 files in another.\n\n" +
			"Every FLAC file in source_dir/relative_dir is converted to MP3 in\n" +
			"dest_dir/relative_dir unless the MP3 file already exists.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          syncArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) || (cmd.Parent() == nil && len(args) == 0) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runSync(cmd, ctx, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "write verbose output (helps with debugging)")
	rootCmd.PersistentFlags().StringVar(&flags.tempDir, "temp-dir", "", "Directory for intermediate WAV files")
	rootCmd.PersistentFlags().StringVar(&flags.flac, "flac", "", "FLAC decoder executable")
	rootCmd.PersistentFlags().StringVar(&flags.lame, "lame", "", "LAME encoder executable")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// syncArgs accepts either no arguments (help) or all three directories.
func syncArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0, 3:
		return nil
	default:
		return fmt.Errorf("expected source_dir, dest_dir and relative_dir, got %d argument(s); see %s --help", len(args), cmd.CommandPath())
	}
}

func runSync(cmd *cobra.Command, ctx *commandContext, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg.Run.SourceDir = args[0]
	cfg.Run.DestDir = args[1]
	cfg.Run.RelativeDir = args[2]

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	transcoder := transcode.New(
		toolexec.NewRunner(logger),
		transcode.WithFlacBinary(cfg.Tools.FlacBinary),
		transcode.WithLameBinary(cfg.Tools.LameBinary),
	)
	logger.Debug("tools resolved",
		logging.String("flac", transcoder.FlacBinary()),
		logging.String("lame", transcoder.LameBinary()),
	)

	_, err = syncer.New(cfg, transcoder,
		syncer.WithOutput(cmd.OutOrStdout()),
		syncer.WithLogger(logger),
	).Run(cmd.Context())
	return err
}
