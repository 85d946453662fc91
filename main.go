package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"barbershop-backend/clock"
	"barbershop-backend/config"
	"barbershop-backend/routes"
	"barbershop-backend/services"
	"barbershop-backend/storage"
	"barbershop-backend/store"
	"barbershop-backend/utils"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "barbershop",
		Short: "Barbershop booking and back-office API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
		SilenceUsage: true,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the postgres schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate()
			},
		},
		&cobra.Command{
			Use:   "hash-password [password]",
			Short: "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH or BARBER_PASSWORD_HASH",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hash, err := utils.HashPassword(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			},
		},
	)
	return root
}

func migrate() error {
	cfg := config.Load()
	db, err := config.ConnectDB(cfg.Store.DatabaseURL)
	if err != nil {
		return err
	}
	if err := store.NewGormBackend(db).Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Println("Database schema is up to date")
	return nil
}

// openStore builds the entity store for the configured driver. A postgres
// store with an empty catalog is seeded with the demo services and barbers.
func openStore(ctx context.Context, cfg config.StoreConfig) (*store.Store, *gorm.DB, error) {
	switch cfg.Driver {
	case "memory", "":
		return store.NewSeeded(), nil, nil
	case "postgres":
		db, err := config.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		backend := store.NewGormBackend(db)
		if err := backend.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		st, err := store.NewWithBackend(ctx, backend)
		if err != nil {
			return nil, nil, err
		}
		if len(st.Services()) == 0 && len(st.Barbers()) == 0 {
			seed := store.NewSeeded().Snapshot()
			st.SetServices(store.Replace(seed.Services))
			st.SetBarbers(store.Replace(seed.Barbers))
			log.Println("Seeded demo catalog")
		}
		return st, db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	gin.SetMode(cfg.Server.GinMode)

	st, db, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}

	kv, err := storage.New(storage.Config{
		Driver:        cfg.Timers.Driver,
		Path:          cfg.Timers.Path,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return fmt.Errorf("timer storage: %w", err)
	}
	if c, ok := kv.(io.Closer); ok {
		defer c.Close()
	}

	policy, err := services.ParseStatusPolicy(cfg.Bookings.StatusPolicy)
	if err != nil {
		return err
	}

	clk := clock.NewSystem()
	defer clk.Stop()

	feed := services.NewFeed(200)
	notifier := services.MultiNotifier{services.LogNotifier{}, feed}

	var events services.EventPublisher = services.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		events = services.NewAMQPPublisher(cfg.RabbitMQ.URL)
	}

	catalog := services.NewCatalogService(st, notifier)
	bookings := services.NewBookingService(st, clk, notifier, events, policy)
	finance := services.NewFinanceService(st, clk, notifier)
	orders := services.NewOrderEngine(st, clk, clk, kv, notifier, events)
	if err := orders.Restore(ctx); err != nil {
		log.Printf("Failed to save restored timers: %v", err)
	}
	defer orders.Close()

	sessions := services.NewWizardSessions(clk, notifier)
	defer sessions.ExpireIdle(clk, cfg.Bookings.SessionIdle)()

	var reminders *services.ReminderService
	if cfg.Twilio.Enabled() {
		sender := services.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.PhoneNumber, cfg.Twilio.WhatsAppNumber)
		reminders = services.NewReminderService(st, clk, sender, db)
		reminders.SetTemplate(cfg.Reminders.Template)
		if err := reminders.StartScheduler(cfg.Reminders.Schedule); err != nil {
			return fmt.Errorf("reminder schedule: %w", err)
		}
		defer reminders.Stop()
	} else {
		log.Println("Twilio is not configured, reminders are disabled")
	}

	deps := routes.Deps{
		Catalog:        catalog,
		Bookings:       bookings,
		Orders:         orders,
		Finance:        finance,
		Reminders:      reminders,
		Sessions:       sessions,
		Feed:           feed,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SlowRequest:    cfg.Server.SlowRequest,
		JWT:            cfg.JWT,
	}
	if cfg.Auth.Enabled() {
		if deps.JWT.Secret == "" {
			deps.JWT.Secret = utils.GenerateJWTSecret()
			log.Println("JWT_SECRET not set, using a random secret for this run")
		}
		deps.Auth = &cfg.Auth
	}

	r := routes.SetupRouter(deps)
	printRoutes(r)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
