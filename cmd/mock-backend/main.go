package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/RemoteMovieDatabase/internal/infra/mockbackend"
	"github.com/jonboulle/clockwork"
)

func main() {
	addr := getEnv("MOCK_BACKEND_ADDR", ":8081")
	latency, err := time.ParseDuration(getEnv("MOCK_LATENCY", "0s"))
	if err != nil {
		slog.Error("Invalid MOCK_LATENCY", "error", err)
		os.Exit(1)
	}

	handler := mockbackend.NewHandler(mockbackend.Options{
		Clock:   clockwork.NewRealClock(),
		Latency: latency,
		Pages:   40,
		PerPage: 20,
	})

	slog.Info("Mock movie backend running", "address", addr, "latency", latency)
	srv := &http.Server{Addr: addr, Handler: handler}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
