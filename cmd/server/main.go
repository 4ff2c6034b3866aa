// Command climatch-server serves city name and climate similarity
// search over HTTP as JSON: POST a CityRequest body to / and get a
// JSON search response back. Unlike the interactive CLI, the shorthand
// request forms are never accepted here - every request must be
// well-formed JSON.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreiashu/climatch"
	"github.com/andreiashu/climatch/internal/ingestion"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "climatch-server",
		Short: "Serve city name and climate similarity search over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address (host:port)")
	return cmd
}

func runServer(ctx context.Context, addr string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("climatch-server: building logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	records, err := ingestion.NewDemoLoader().Load(ctx)
	if err != nil {
		return fmt.Errorf("climatch-server: loading cities: %w", err)
	}
	cities := recordsToCities(records)

	engine, err := climatch.New(ctx, cities, climatch.WithLogger(sugar))
	if err != nil {
		return fmt.Errorf("climatch-server: building engine: %w", err)
	}
	dispatcher := climatch.NewDispatcher(engine)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(engine.Metrics().Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST is supported", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, fmt.Sprintf("reading request body: %v", err), http.StatusBadRequest)
			return
		}
		out, err := dispatcher.HandleJSON(r.Context(), body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(out)
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	sugar.Infow("server started", "addr", addr, "cities", len(cities))
	return srv.ListenAndServe()
}

func recordsToCities(records []ingestion.Record) []climatch.City {
	cities := make([]climatch.City, len(records))
	for i, r := range records {
		cities[i] = climatch.City{
			ID:               r.ID,
			Names:            r.Names,
			Latitude:         r.Latitude,
			Longitude:        r.Longitude,
			AdminUnit:        r.AdminUnit,
			Country:          r.Country,
			Population:       r.Population,
			Elevation:        r.Elevation,
			Region:           r.Region,
			ModificationDate: r.ModificationDate,
			Climate: climatch.ClimateProfile{
				HumidityMonthly: r.HumidityMonthly,
				PPTMonthly:      r.PPTMonthly,
				SRadMonthly:     r.SRadMonthly,
				TMaxMonthly:     r.TMaxMonthly,
				TMinMonthly:     r.TMinMonthly,
				WSMonthly:       r.WSMonthly,
			},
		}
	}
	return cities
}
