package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"seatmap/internal/booking"
	"seatmap/internal/booking/booking_api"
	"seatmap/internal/bookingapi"
	"seatmap/internal/config"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()

	// Cancelled on shutdown so pending re-syncs stop with the process.
	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpClient := &http.Client{Timeout: cfg.BookingService.Timeout}
	client := bookingapi.NewClient(cfg.BookingService.BaseURL, httpClient)
	service := booking.NewService(baseCtx, client, cfg.BookingService.ResyncDelay)
	handler := booking_api.NewHandler(service)

	// Initial load; a failure leaves the all-available fallback and a
	// banner, the server still starts.
	go func() {
		if err := service.Load(baseCtx, false); err != nil {
			log.Printf("initial load failed: %v", err)
		}
	}()

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/seatmap", handler.GetSeatMap)
		r.Post("/refresh", handler.Refresh)
		r.Post("/seats/{seatID}/select", handler.SelectSeat)
		r.Put("/form", handler.UpdateForm)
		r.Delete("/selection", handler.CloseModal)
		r.Post("/bookings", handler.SubmitBooking)
		r.Get("/bookings/{bookingID}/qr", handler.BookingQR)
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("🚀 Seatmap service on %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = server.Shutdown(ctxShutdown)
	log.Println("✅ Seatmap service shutdown complete")
}
