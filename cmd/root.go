package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/liralabs/lirabot/internal/catalog"
	"github.com/liralabs/lirabot/internal/chat"
	"github.com/liralabs/lirabot/internal/config"
	"github.com/liralabs/lirabot/internal/gateway"
	"github.com/liralabs/lirabot/internal/ledger"
	"github.com/liralabs/lirabot/internal/logger"
	"github.com/liralabs/lirabot/internal/pricing"
	"github.com/liralabs/lirabot/internal/session"

	"github.com/spf13/cobra"
)

var (
	flagBackend  string
	flagLanguage string
	flagDataDir  string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "lirabot",
	Short: "Lira Cosmetics customer support assistant",
	Long:  "Usage-metered customer support chat for Lira Cosmetics: multi-provider dispatch, per-session cost accounting, and voice cost projections.",
	RunE:  runChat,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".local", "share", "lirabot")

	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "LLM backend (groq, openai, gemini, mock)")
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "en", "Interface language (en, bn)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", defaultDataDir, "Data directory for the usage database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// runtime bundles the wired application services shared by commands.
type runtime struct {
	cfg      config.Config
	log      *zap.Logger
	gw       *gateway.Gateway
	calc     *pricing.Calculator
	usage    *ledger.Ledger
	store    *ledger.Store
	sessions *session.Store
	mgr      *chat.Manager
	products []catalog.Product
}

func (r *runtime) Close() {
	if r.store != nil {
		r.store.Close()
	}
	_ = r.log.Sync()
}

// backend returns the effective backend: flag first, then config.
func (r *runtime) backend() string {
	if flagBackend != "" {
		return flagBackend
	}
	return r.cfg.General.DefaultBackend
}

func usageDBPath() string {
	return filepath.Join(flagDataDir, "usage.db")
}

// newRuntime wires config, logging, pricing, the backend gateway, the
// usage ledger with its durable sinks, sessions, and the chat manager.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(flagVerbose)

	table := pricing.DefaultTable.Merge(pricingOverrides(cfg))
	calc := pricing.NewCalculator(table)

	if err := os.MkdirAll(flagDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	store, err := ledger.OpenStore(usageDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening usage database: %w", err)
	}

	sinks := []ledger.Sink{store, ledger.NewVerificationLog(cfg.General.LogDir)}
	usage := ledger.New(log, sinks...)

	gw := gateway.NewFromConfig(cfg, log)

	sessions := session.NewStore(cfg.Session.HistoryExchanges, cfg.Session.TTL())

	loader := catalog.NewLoader(cfg.CatalogURL(), cfg.CatalogAPIKey(), cfg.Catalog.LocalPath, log)
	products, productData := loader.Load(ctx)

	mgr := chat.NewManager(gw, calc, usage, sessions, config.RenderSystemPrompt(productData), log)

	return &runtime{
		cfg:      cfg,
		log:      log,
		gw:       gw,
		calc:     calc,
		usage:    usage,
		store:    store,
		sessions: sessions,
		mgr:      mgr,
		products: products,
	}, nil
}

func pricingOverrides(cfg config.Config) map[string]pricing.Entry {
	if len(cfg.Pricing.Overrides) == 0 {
		return nil
	}
	out := make(map[string]pricing.Entry, len(cfg.Pricing.Overrides))
	for name, o := range cfg.Pricing.Overrides {
		out[name] = pricing.Entry{InputPerMTok: o.InputPerMTok, OutputPerMTok: o.OutputPerMTok}
	}
	return out
}
