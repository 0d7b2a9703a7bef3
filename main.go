package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"lodge-backend/config"
	"lodge-backend/controllers"
	"lodge-backend/pdf"
	"lodge-backend/routes"
	"lodge-backend/services"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "lodge-backend",
		Short: "Lodge booking and front-desk API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}
	rootCmd.AddCommand(serveCmd(cfg), migrateCmd(cfg), seedCmd(cfg), reportCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func connect(cfg config.Config, migrate bool) (*gorm.DB, error) {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connect failed: %w", err)
	}
	log.Printf("✅ Database connection established (%s)", cfg.DBDriver)
	if migrate {
		if err := config.Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Println("✅ Migrations applied")
	}
	return db, nil
}

func serveCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}
}

func migrateCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := connect(cfg, true)
			return err
		},
	}
}

func seedCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default room types and rooms into an empty catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect(cfg, true)
			if err != nil {
				return err
			}
			return config.SeedDatabase(db)
		},
	}
}

func reportCmd(cfg config.Config) *cobra.Command {
	var (
		month, year int
		out         string
	)
	cmd := &cobra.Command{
		Use:       "report [sales|checkins|reservations]",
		Short:     "Print a monthly report as JSON, or write it as PDF with --out",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"sales", "checkins", "reservations"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect(cfg, false)
			if err != nil {
				return err
			}
			clock := services.NewSystemClock(cfg.TimeZone)
			reports, err := services.NewReportService(db, clock)
			if err != nil {
				return err
			}

			p := services.CurrentPeriod(clock)
			if month != 0 {
				p.Month = month
			}
			if year != 0 {
				p.Year = year
			}

			ctx := cmd.Context()
			var (
				data interface{}
				body []byte
			)
			switch args[0] {
			case "sales":
				rep, err := reports.Sales(ctx, p)
				if err != nil {
					return err
				}
				data = rep
				if out != "" {
					body, err = pdf.SalesReport(cfg.LodgeName, rep)
				}
				if err != nil {
					return err
				}
			case "checkins":
				rep, err := reports.Checkins(ctx, p)
				if err != nil {
					return err
				}
				data = rep
				if out != "" {
					body, err = pdf.CheckinReport(cfg.LodgeName, rep)
				}
				if err != nil {
					return err
				}
			case "reservations":
				rep, err := reports.Reservations(ctx, p)
				if err != nil {
					return err
				}
				data = rep
				if out != "" {
					body, err = pdf.ReservationsReport(cfg.LodgeName, rep)
				}
				if err != nil {
					return err
				}
			}

			if out != "" {
				if err := os.WriteFile(out, body, 0644); err != nil {
					return err
				}
				log.Printf("✅ %s report for %s written to %s", args[0], p.Label(), out)
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default: current)")
	cmd.Flags().IntVar(&year, "year", 0, "year (default: current)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write a PDF to this path")
	return cmd
}

func serve(cfg config.Config) error {
	db, err := connect(cfg, true)
	if err != nil {
		return err
	}
	if err := config.SeedDatabase(db); err != nil {
		log.Printf("⚠️  seeding failed: %v", err)
	}

	clock := services.NewSystemClock(cfg.TimeZone)

	var publisher services.Publisher = services.NoopPublisher{}
	if cfg.NATSURL != "" {
		p, err := services.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			log.Printf("⚠️  NATS unavailable at %s, events disabled: %v", cfg.NATSURL, err)
		} else {
			log.Printf("✅ Publishing reservation events to %s", cfg.NATSURL)
			publisher = p
		}
	}
	events := services.NewEventEmitter(publisher)

	sms := services.NewSMSNotifier(db, services.SMSConfig{
		APIURL:     cfg.SMSAPIURL,
		Token:      cfg.SMSToken,
		SenderID:   cfg.SMSSenderID,
		AdminPhone: cfg.AdminPhone,
		LodgeName:  cfg.LodgeName,
		Timeout:    cfg.SMSTimeout,
	})

	// Initialize services
	photos := services.NewPhotoStore(cfg.UploadDir)
	reservationService := services.NewReservationService(db, clock, photos, sms, events)
	reservationService.DefaultNationality = cfg.DefaultNationality
	roomTypeService := services.NewRoomTypeService(db, clock)
	roomService := services.NewRoomService(db, clock)
	customerService := services.NewCustomerService(db)
	reportService, err := services.NewReportService(db, clock)
	if err != nil {
		return err
	}

	// Build router
	router := routes.SetupRouter(routes.Handlers{
		Bookings:     controllers.NewBookingController(reservationService, cfg.LodgeName),
		Reservations: controllers.NewReservationController(reservationService, roomService),
		RoomTypes:    controllers.NewRoomTypeController(roomTypeService),
		Rooms:        controllers.NewRoomController(roomService),
		Customers:    controllers.NewCustomerController(customerService),
		Reports:      controllers.NewReportController(reportService, cfg.LodgeName),
	}, cfg.CORSOrigins, cfg.UploadDir)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	sms.Wait()
	if err := publisher.Close(); err != nil {
		log.Printf("⚠️  closing event publisher: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}
