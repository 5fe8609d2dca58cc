package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/caesium-lab/evacenv/internal/config"
	"github.com/caesium-lab/evacenv/pkg/environment/factory"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var opts factory.Options

	rootCmd := &cobra.Command{
		Use:          "evacenv",
		Short:        "Inspect, validate and serve evacuation environment documents",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "abort on gateways that cannot be added")
	rootCmd.PersistentFlags().BoolVar(&opts.Legacy, "legacy", false, "read the flat obstacle schema with X/Y point keys")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(validateCmd(&opts))
	rootCmd.AddCommand(showCmd(&opts))
	rootCmd.AddCommand(queryCmd(&opts))
	rootCmd.AddCommand(snapshotCmd(cfg, &opts))
	rootCmd.AddCommand(serveCmd(cfg, &opts))
	return rootCmd
}

func validateCmd(opts *factory.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [environment-file]",
		Short: "Load an environment and report structural and spatial problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0], *opts)
		},
	}
}

func showCmd(opts *factory.Options) *cobra.Command {
	var (
		indent  string
		compact bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "show [environment-file]",
		Short: "Print the environment in the canonical JSON schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if compact {
				indent = ""
			}
			return runShow(cmd.OutOrStdout(), args[0], output, indent, *opts)
		},
	}

	cmd.Flags().StringVar(&indent, "indent", "  ", "indentation for pretty printing")
	cmd.Flags().BoolVar(&compact, "compact", false, "print compact JSON on one line")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func queryCmd(opts *factory.Options) *cobra.Command {
	var (
		domain int32
		x, y   float64
	)

	cmd := &cobra.Command{
		Use:   "query [environment-file]",
		Short: "Report what occupies a point of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.OutOrStdout(), args[0], domain, x, y, *opts)
		},
	}

	cmd.Flags().Int32Var(&domain, "domain", 1, "domain id")
	cmd.Flags().Float64Var(&x, "x", 0, "x coordinate in domain space")
	cmd.Flags().Float64Var(&y, "y", 0, "y coordinate in domain space")
	return cmd
}

func snapshotCmd(cfg *config.Config, opts *factory.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Store and retrieve environment snapshots",
	}

	cmd.PersistentFlags().StringVar(&cfg.Snapshot.Driver, "driver", cfg.Snapshot.Driver, "snapshot driver (fs, memory, s3)")
	cmd.PersistentFlags().StringVar(&cfg.Snapshot.FSRoot, "root", cfg.Snapshot.FSRoot, "snapshot directory for the fs driver")

	cmd.AddCommand(&cobra.Command{
		Use:   "save [environment-file]",
		Short: "Store an environment and print its snapshot key",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSnapshotSave(c.Context(), c.OutOrStdout(), cfg.Snapshot, args[0], *opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Print a stored environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSnapshotGet(c.Context(), c.OutOrStdout(), cfg.Snapshot, args[0], *opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored environments",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSnapshotList(c.Context(), c.OutOrStdout(), cfg.Snapshot)
		},
	})
	return cmd
}

func serveCmd(cfg *config.Config, opts *factory.Options) *cobra.Command {
	var withSnapshots bool

	cmd := &cobra.Command{
		Use:   "serve [environment-file]",
		Short: "Serve the environment over a read-only HTTP API",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), cfg, args[0], withSnapshots, *opts)
		},
	}

	cmd.Flags().IntVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP server port")
	cmd.Flags().BoolVar(&withSnapshots, "snapshots", false, "enable the snapshot endpoints using the configured driver")
	return cmd
}
