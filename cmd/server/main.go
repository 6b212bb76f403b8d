package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"eventshare/internal/cache/memory"
	"eventshare/internal/config"
	"eventshare/internal/domain"
	"eventshare/internal/logging"
	"eventshare/internal/metrics"
	"eventshare/internal/repository/sqlite"
	"eventshare/internal/service"
	"eventshare/internal/shareconfig"
	"eventshare/internal/transport/client"
	httpTransport "eventshare/internal/transport/http"
	"eventshare/internal/watcher"
)

var rootCmd = &cobra.Command{
	Use:   "eventshare",
	Short: "Share text generation for monthly community events",
	Long:  "A service that collects community events and builds a share text for the current month, truncated to fit a 280 character limit",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the event share server",
	RunE:  runServer,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for interacting with the server",
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Generate and display the share text for this month",
	RunE:  runShare,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and update the share configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the share configuration",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update parts of the share configuration",
	RunE:  runConfigSet,
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage events",
}

var eventsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new event",
	RunE:  runEventsAdd,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	RunE:  runEventsList,
}

var eventsApproveCmd = &cobra.Command{
	Use:   "approve [ID]",
	Short: "Approve an event so it appears in the share text",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsApprove,
}

var eventsRejectCmd = &cobra.Command{
	Use:   "reject [ID]",
	Short: "Reject an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsReject,
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete [ID]",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsDelete,
}

var eventsImportCmd = &cobra.Command{
	Use:   "import [FILE]",
	Short: "Import events from an iCalendar file",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsImport,
}

func init() {
	// Server command flags; EVENTSHARE_* environment variables fill in
	// any flag that is not set explicitly
	serverCmd.Flags().StringP("port", "p", "8080", "Server port")
	serverCmd.Flags().String("server-url", "http://localhost:8080", "Server URL (for client communication)")
	serverCmd.Flags().String("db-path", "events.db", "Database file path")
	serverCmd.Flags().Duration("cache-ttl", memory.DefaultTTL, "Share result cache TTL")
	serverCmd.Flags().Int("cache-max-entries", memory.DefaultMaxEntries, "Share result cache capacity")
	serverCmd.Flags().String("share-config", "share.yaml", "Share configuration file path")
	serverCmd.Flags().Bool("watch-config", false, "Reload the share configuration when its file changes")
	serverCmd.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	// Client command flags
	clientCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8080", "Server URL")

	configSetCmd.Flags().String("url", "", "Destination URL for the share text")
	configSetCmd.Flags().String("message", "", "Base message for the share text")
	configSetCmd.Flags().StringSlice("hashtag", nil, "Hashtag appended to the share text (repeatable)")

	eventsAddCmd.Flags().String("title", "", "Event title")
	eventsAddCmd.Flags().String("start", "", "Start time (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	eventsAddCmd.Flags().String("end", "", "End time, defaults to the start time")
	eventsAddCmd.Flags().String("link", "", "Event detail page URL")
	eventsAddCmd.Flags().String("id", "", "Event id, generated when empty")
	eventsAddCmd.Flags().String("status", "", "Initial status (pending, approved, rejected)")

	eventsImportCmd.Flags().Bool("approve", false, "Create imported events as approved")

	// Add subcommands
	configCmd.AddCommand(configGetCmd, configSetCmd)
	eventsCmd.AddCommand(eventsAddCmd, eventsListCmd, eventsApproveCmd, eventsRejectCmd, eventsDeleteCmd, eventsImportCmd)
	clientCmd.AddCommand(shareCmd, configCmd, eventsCmd)
	rootCmd.AddCommand(serverCmd, clientCmd)
}

func stringOr(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetString(name)
		return value
	}
	return fallback
}

func durationOr(cmd *cobra.Command, name string, fallback time.Duration) time.Duration {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetDuration(name)
		return value
	}
	return fallback
}

func intOr(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetInt(name)
		return value
	}
	return fallback
}

func boolOr(cmd *cobra.Command, name string, fallback bool) bool {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetBool(name)
		return value
	}
	return fallback
}

func runServer(cmd *cobra.Command, args []string) error {
	env, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	// Explicit flags win over environment variables
	cfg, err := config.New(
		stringOr(cmd, "port", env.Port),
		stringOr(cmd, "server-url", env.ServerURL),
		stringOr(cmd, "db-path", env.DatabasePath),
		durationOr(cmd, "cache-ttl", env.CacheTTL),
		intOr(cmd, "cache-max-entries", env.CacheMaxEntries),
		stringOr(cmd, "share-config", env.ShareConfigPath),
		boolOr(cmd, "watch-config", env.WatchConfig),
		stringOr(cmd, "log-level", env.LogLevel),
	)
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	logger := logging.New(cfg.Logging.Level)
	logger.Info().
		Str("port", cfg.Server.Port).
		Str("db_path", cfg.Database.Path).
		Str("share_config", cfg.Share.ConfigPath).
		Msg("starting event share server")

	// Load the share configuration, writing defaults on first run
	store := shareconfig.NewFileStore(cfg.Share.ConfigPath)
	shareCfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load share config: %w", err)
	}

	// Initialize database
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close repository")
		}
	}()

	// Initialize cache and service
	resultCache := memory.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	svc := service.NewShareService(repo, resultCache, store, shareCfg, service.WithLogger(logger))
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close service")
		}
	}()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Share.Watch {
		reload := func(ctx context.Context) error {
			_, err := svc.ReloadShareConfig(ctx)
			return err
		}
		configWatcher, err := watcher.New(cfg.Share.ConfigPath, reload, logger)
		if err != nil {
			return fmt.Errorf("failed to start config watcher: %w", err)
		}
		defer configWatcher.Close()
		go configWatcher.Run(ctx)
	}

	// Create and start HTTP server
	server := httpTransport.NewServer(svc, cfg.Server.Port, logger)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shut down server")
		}
	}

	logger.Info().Msg("server stopped")
	return nil
}

func newCommands(cmd *cobra.Command) *client.Commands {
	serverURL, _ := cmd.Flags().GetString("server-url")
	return client.NewCommands(client.NewClient(serverURL))
}

// parseEventTime accepts a date with an optional time of day
func parseEventTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, use YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", value)
}

func runShare(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).Share(ctx)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).GetConfig(ctx)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")
	message, _ := cmd.Flags().GetString("message")
	hashtags, _ := cmd.Flags().GetStringSlice("hashtag")
	hashtagsSet := cmd.Flags().Changed("hashtag")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).SetConfig(ctx, url, message, hashtags, hashtagsSet)
}

func runEventsAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	startValue, _ := cmd.Flags().GetString("start")
	endValue, _ := cmd.Flags().GetString("end")
	link, _ := cmd.Flags().GetString("link")
	id, _ := cmd.Flags().GetString("id")
	status, _ := cmd.Flags().GetString("status")

	start, err := parseEventTime(startValue)
	if err != nil {
		return err
	}
	end, err := parseEventTime(endValue)
	if err != nil {
		return err
	}

	request := domain.CreateEventRequest{
		ID:        id,
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Link:      link,
		Status:    status,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).AddEvent(ctx, request)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).ListEvents(ctx)
}

func runEventsApprove(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).Approve(ctx, args[0])
}

func runEventsReject(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).Reject(ctx, args[0])
}

func runEventsDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return newCommands(cmd).DeleteEvent(ctx, args[0])
}

func runEventsImport(cmd *cobra.Command, args []string) error {
	approve, _ := cmd.Flags().GetBool("approve")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return newCommands(cmd).ImportEvents(ctx, args[0], approve)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
