// Command enlighten serves the spectrum interpolation API backed by a
// SQLite settings database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/enlighten/internal/api"
	"github.com/banshee-data/enlighten/internal/config"
	"github.com/banshee-data/enlighten/internal/db"
	"github.com/banshee-data/enlighten/internal/interpolation"
	"github.com/banshee-data/enlighten/internal/version"
)

var (
	listen       = flag.String("listen", ":8080", "Listen address")
	dbPath       = flag.String("db", "enlighten.db", "Path to the settings database")
	defaultsPath = flag.String("defaults", "", "Interpolation defaults JSON (default: search for "+config.DefaultConfigPath+")")
	assetsHost   = flag.String("echarts-assets", "", "Host serving echarts assets for chart pages (default: go-echarts CDN)")
	debug        = flag.Bool("debug", false, "Log axis regeneration and per-reading trace output")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func loadDefaults() (*config.InterpolationConfig, error) {
	if *defaultsPath != "" {
		return config.LoadInterpolationConfig(*defaultsPath)
	}
	return config.FindDefaultConfig()
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	if *debug {
		interpolation.SetLogWriters(os.Stderr, os.Stderr, os.Stderr)
	} else {
		interpolation.SetLogWriters(os.Stderr, nil, nil)
	}

	defaults, err := loadDefaults()
	if err != nil {
		log.Fatalf("failed to load interpolation defaults: %v", err)
	}

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ip := interpolation.NewInterpolator(database)
	if err := ip.LoadFromStore(defaults); err != nil {
		// unreadable keys fell back to defaults; keep serving
		log.Printf("some interpolation settings could not be read: %v", err)
	}
	log.Printf("starting %s: %s (%s, %d pixels)", version.String(), ip, ip.State(), ip.TotalPixels())

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := api.NewServer(ip).WithAssetsHost(*assetsHost).ServeMux()
		database.AttachAdminRoutes(mux)

		server := &http.Server{
			Addr:              *listen,
			Handler:           api.LoggingMiddleware(mux),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()
		log.Printf("listening on %s", *listen)

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			if err := server.Close(); err != nil {
				log.Printf("HTTP server force close error: %v", err)
			}
		}
		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
