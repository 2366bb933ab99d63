package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/bunnyapi"
	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/config"
	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/dns"
	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/dns/bunny"
	_ "github.com/yuriy-kovalchuk/yk-bunny-dns/internal/dns/providers"
	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/telemetry"
)

var Version = "dev"

func main() {
	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)

	cmd := newRootCommand(&opts, os.Stdout)
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	if err := cmd.ExecuteContext(ctrl.SetupSignalHandler()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	retries    int
	output     string
	log        logr.Logger
	shutdown   func(context.Context) error

	cfg      *config.ProviderConfig
	provider dns.Provider
}

func newRootCommand(opts *zap.Options, out io.Writer) *cobra.Command {
	a := &app{log: logr.Discard()}

	root := &cobra.Command{
		Use:           "yk-bunny-dns",
		Short:         "Manage Bunny DNS zones and records",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(opts), zap.WriteTo(os.Stderr)))
			a.log = ctrl.Log.WithName("cli")

			shutdown, err := telemetry.Setup(cmd.Context(), Version)
			if err != nil {
				return fmt.Errorf("unable to set up tracing: %w", err)
			}
			a.shutdown = shutdown
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"provider config file (default $DNS_PROVIDER_PATH or "+config.DefaultProviderConfigPath+")")
	root.PersistentFlags().IntVar(&a.retries, "retries", 0,
		"retry failed API calls this many times (Unauthorized, Not Found and invalid records are never retried)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "output format: text or json")

	root.AddCommand(
		newZonesCommand(a),
		newRecordsCommand(a),
		newHostCommand(a),
	)
	return root
}

// loadProvider reads the provider config and builds the registered provider.
func (a *app) loadProvider() error {
	if a.provider != nil {
		return nil
	}

	var (
		cfg *config.ProviderConfig
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadProviderConfigFromPath(a.configPath)
	} else {
		cfg, err = config.LoadProviderConfig()
	}
	if err != nil {
		return fmt.Errorf("unable to load provider config: %w", err)
	}
	a.log.V(1).Info("loaded provider config", "provider", cfg.Provider)

	if cfg.Settings == nil {
		cfg.Settings = map[string]string{}
	}
	if cfg.Settings["user_agent"] == "" {
		cfg.Settings["user_agent"] = bunnyapi.DefaultUserAgent + "/" + Version
	}

	p, err := dns.NewProvider(cfg.Provider, ctrl.Log.WithName("dns-"+cfg.Provider), cfg.Settings)
	if err != nil {
		return fmt.Errorf("unable to create DNS provider: %w", err)
	}
	a.cfg = cfg
	a.provider = p
	return nil
}

// client returns the Bunny API client behind the configured provider.
func (a *app) client() (*bunnyapi.Client, error) {
	if err := a.loadProvider(); err != nil {
		return nil, err
	}
	bp, ok := a.provider.(*bunny.Provider)
	if !ok {
		return nil, fmt.Errorf("provider %q does not expose the Bunny API", a.cfg.Provider)
	}
	return bp.Client(), nil
}
