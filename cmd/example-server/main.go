package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locking-gateway/middleware/locking"
	"locking-gateway/middleware/locking/infra"
)

func main() {
	// Exemplo: injetando o middleware diretamente no seu webserver (sem proxy).
	// Um único gate compartilhado impõe um teto combinado para dois grupos de
	// rotas, cada um com seu próprio timeout de espera.
	gate := infra.NewChanGate(50)
	defer func() { _ = gate.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stats := infra.NewMemoryStatsStore()

	mux := http.NewServeMux()
	mux.Handle("/fast", locking.Middleware(locking.Options{
		Lock:  locking.NewShared(gate, 0), // cheio = nega na hora
		Stats: stats,
		Name:  "fast",
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})))
	mux.Handle("/slow", locking.Middleware(locking.Options{
		Lock:  locking.NewShared(gate, 250*time.Millisecond),
		Stats: stats,
		Name:  "slow",
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("slow ok\n"))
	})))

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("example server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("stats: total=%+v", stats.Total())
}
