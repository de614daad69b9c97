package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/emberoak/caterserve/internal/assets"
	"github.com/emberoak/caterserve/internal/cocktails"
	"github.com/emberoak/caterserve/internal/config"
	"github.com/emberoak/caterserve/internal/content"
	"github.com/emberoak/caterserve/internal/db"
	"github.com/emberoak/caterserve/internal/events"
	"github.com/emberoak/caterserve/internal/gallery"
	"github.com/emberoak/caterserve/internal/sales"
	"github.com/emberoak/caterserve/internal/server"
	"github.com/emberoak/caterserve/internal/terminal"
)

var (
	servePort      int
	serveStaticDir string
	serveAllowAll  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the caterserve API server",
	Long:  `Starts the HTTP server with the sales, events, cocktails, content, gallery, terminal, and asset APIs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Secrets live in .env during development; missing file is fine.
		godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if serveStaticDir != "" {
			cfg.StaticDir = serveStaticDir
		}
		if serveAllowAll {
			cfg.AllowAll = true
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, "caterserve.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:      cfg.Port,
			StaticDir: cfg.StaticDir,
			AllowAll:  cfg.AllowAll,
		}, database)

		registerAllRoutes(srv, database, cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "caterserve v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		if !cfg.TerminalEnabled() {
			fmt.Fprintln(os.Stderr, "  Terminal: disabled (no stripe.secret_key)")
		}
		if !cfg.MediaEnabled() {
			fmt.Fprintln(os.Stderr, "  Media: disabled (no media credentials)")
		}

		return srv.Start()
	},
}

// registerAllRoutes wires every feature package onto the router.
func registerAllRoutes(srv *server.Server, database *db.DB, cfg *config.Config) {
	r := srv.Router()

	// The terminal proxy runs with a nil client when no secret key is
	// configured; its routes then answer 400.
	var terminalClient *terminal.Client
	var refundForwarder sales.RefundForwarder
	if cfg.TerminalEnabled() {
		terminalClient = terminal.NewClient(cfg.Stripe.BaseURL, cfg.Stripe.SecretKey, cfg.Stripe.LocationID, cfg.Stripe.Currency)
		refundForwarder = terminalClient
	}

	salesStore := sales.NewStore(database)
	sales.RegisterRoutes(r, salesStore, refundForwarder)

	eventStore := events.NewStore(database)
	events.RegisterRoutes(r, eventStore)

	cocktailStore := cocktails.NewStore(database)
	cocktails.RegisterRoutes(r, cocktailStore)

	contentStore := content.NewStore(database)
	content.RegisterRoutes(r, contentStore)

	feed := terminal.NewFeed()
	terminal.RegisterRoutes(r, terminal.NewHandler(terminalClient, salesStore, feed))

	// Same for the media library and the gallery layouts built on it.
	var assetService *assets.Service
	if cfg.MediaEnabled() {
		client := assets.NewClient(cfg.Media.BaseURL, cfg.Media.CloudName, cfg.Media.APIKey, cfg.Media.APISecret)
		assetService = assets.NewService(client, cfg.Media.GalleryPrefix, cfg.Media.LogoPublicID)
		assets.RegisterRoutes(r, assetService)
	}

	var lister gallery.ImageLister
	if assetService != nil {
		lister = assetService
	}
	gallery.RegisterRoutes(r, lister)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "SPA build directory to serve at /")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "Allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
