package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/halwyn/wowlog-parser/internal/config"
	"github.com/halwyn/wowlog-parser/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	listen := flag.String("listen", cfg.HubListenAddr, "listen address")
	rateLimit := flag.Int("publish-rate", cfg.HubRateLimit, "publish batches per second per publisher")
	flag.Parse()

	log := logging.Init(cfg.LogLevel)

	srv := NewServer(log, *rateLimit)

	router := srv.Routes()
	router.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              *listen,
		Handler:           handlers.LoggingHandler(os.Stdout, router),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("wowloghub listening", "addr", *listen)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
