package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/lobster/internal/config"
	"github.com/aretw0/lobster/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lobster",
	Short: "Lobster runs branching adventures and tracks each player's path",
	Long: `Lobster stores a binary "choose your own adventure" tree and lets every
player walk it one choice at a time. Settings come from LOBSTER_* environment
variables; flags override them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, &loaded); err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(logging.ParseLevel(cfg.LogLevel), logging.Format(cfg.LogFormat))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	f := rootCmd.PersistentFlags()
	f.String("backend", "", "Storage backend: memory, redis or sqlite")
	f.String("redis-addr", "", "Redis address (host:port)")
	f.String("sqlite-path", "", "SQLite database file")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.String("log-format", "", "Log format: text or json")
	f.String("jwt-key", "", "Shared key used to sign bearer tokens")
}

// applyFlags overrides environment settings with flags given on the command line.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	strs := map[string]*string{
		"backend":     &c.Backend,
		"redis-addr":  &c.RedisAddr,
		"sqlite-path": &c.SQLitePath,
		"log-level":   &c.LogLevel,
		"log-format":  &c.LogFormat,
		"jwt-key":     &c.JWTKey,
		"addr":        &c.Addr,
	}
	for name, dst := range strs {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		*dst = flag.Value.String()
	}

	if flag := cmd.Flags().Lookup("distributed-lock"); flag != nil && flag.Changed {
		v, err := cmd.Flags().GetBool("distributed-lock")
		if err != nil {
			return err
		}
		c.DistributedLock = v
	}
	return nil
}
