package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conan-bridge/internal/api"
	"conan-bridge/internal/app"
)

type serveOptions struct {
	Host           string
	Port           int
	ConanHome      string
	ConanBin       string
	FallbackRemote string
	ProbeWorkers   int
	ProbeTimeout   int
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "127.0.0.1", "Bind address")
	cmd.Flags().IntVar(&opts.Port, "port", 8790, "Bind port")
	cmd.Flags().StringVar(&opts.ConanHome, "conan-home", "", "Conan home folder (defaults to ~/.conan2)")
	cmd.Flags().StringVar(&opts.ConanBin, "conan-bin", "conan", "Conan executable")
	cmd.Flags().StringVar(&opts.FallbackRemote, "fallback-remote", "", "Remote appended after an explicitly requested one")
	cmd.Flags().IntVar(&opts.ProbeWorkers, "probe-workers", 0, "Remote probe worker pool size")
	cmd.Flags().IntVar(&opts.ProbeTimeout, "probe-timeout", 0, "Remote probe timeout in seconds")

	_ = viper.BindPFlag("host", cmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("conan_home", cmd.Flags().Lookup("conan-home"))
	_ = viper.BindPFlag("conan_bin", cmd.Flags().Lookup("conan-bin"))
	_ = viper.BindPFlag("fallback_remote", cmd.Flags().Lookup("fallback-remote"))
	_ = viper.BindPFlag("probe_workers", cmd.Flags().Lookup("probe-workers"))
	_ = viper.BindPFlag("probe_timeout", cmd.Flags().Lookup("probe-timeout"))

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	home := resolveString(cmd, opts.ConanHome, "conan_home", "conan-home")
	if home == "" {
		home = defaultConanHome()
	}

	service := app.NewService(app.Config{
		Home:            home,
		Binary:          resolveString(cmd, opts.ConanBin, "conan_bin", "conan-bin"),
		FallbackRemote:  resolveString(cmd, opts.FallbackRemote, "fallback_remote", "fallback-remote"),
		ProbeWorkers:    resolveInt(cmd, opts.ProbeWorkers, "probe_workers", "probe-workers"),
		ProbeTimeoutSec: resolveInt(cmd, opts.ProbeTimeout, "probe_timeout", "probe-timeout"),
	})

	addr := fmt.Sprintf("%s:%d",
		resolveString(cmd, opts.Host, "host", "host"),
		resolveInt(cmd, opts.Port, "port", "port"),
	)
	server := api.NewServer(service, addr)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx)
}

func defaultConanHome() string {
	if env := os.Getenv("CONAN_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".conan2"
	}
	return filepath.Join(home, ".conan2")
}
