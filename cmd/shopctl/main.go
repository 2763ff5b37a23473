package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/config"
	"shopfront/internal/credential"
	"shopfront/internal/guard"
	"shopfront/internal/observability"
	"shopfront/internal/orders"
	"shopfront/internal/products"
	"shopfront/internal/session"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shopctl",
		Short:         "Command-line client for the shop backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newRegisterCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newRefreshCommand())
	cmd.AddCommand(newWhoamiCommand())
	cmd.AddCommand(newRouteCommand())
	cmd.AddCommand(newProductsCommand())
	cmd.AddCommand(newCartCommand())
	cmd.AddCommand(newOrdersCommand())
	return cmd
}

// app is the fully wired client stack shared by all subcommands.
type app struct {
	cfg      *config.Config
	store    *credential.FileStore
	session  *session.Manager
	guard    *guard.Guard
	products *products.Client
	cart     *cart.Client
	orders   *orders.Client
}

func newApp() (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}
	observability.InitLogger(logLevel, logFormat)

	store := credential.NewFileStore(cfg.CredentialsFile)
	client := api.New(cfg.APIBaseURL, store, api.Options{
		Timeout:      cfg.RequestTimeout,
		RateLimitRPS: cfg.RateLimitRPS,
	})

	term := &terminal{out: os.Stdout, errOut: os.Stderr}
	return &app{
		cfg:      cfg,
		store:    store,
		session:  session.NewManager(client, store, term, term, nil),
		guard:    guard.New(store),
		products: products.NewClient(client),
		cart:     cart.NewClient(client),
		orders:   orders.NewClient(client),
	}, nil
}

// terminal renders navigation and notices as plain lines. It stands in for
// the screen changes and toasts a UI would show.
type terminal struct {
	out    io.Writer
	errOut io.Writer
}

func (t *terminal) Navigate(route string) {
	fmt.Fprintf(t.out, "=> %s\n", route)
}

func (t *terminal) Success(msg string) {
	fmt.Fprintln(t.out, msg)
}

func (t *terminal) Error(msg string) {
	fmt.Fprintln(t.errOut, msg)
}

func (t *terminal) Info(msg string) {
	fmt.Fprintln(t.out, msg)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
