package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	_ "github.com/lintang-b-s/navtraffic/docs"
	"github.com/lintang-b-s/navtraffic/pkg/config"
	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/kv"
	"github.com/lintang-b-s/navtraffic/pkg/logger"
	"github.com/lintang-b-s/navtraffic/pkg/server/rest"
	"github.com/lintang-b-s/navtraffic/pkg/server/rest/service"
	"github.com/lintang-b-s/navtraffic/pkg/slowtraffic"
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mymiddleware "github.com/lintang-b-s/navtraffic/pkg/server/middleware"
)

var (
	listenAddr   = flag.String("listenaddr", ":5000", "server listen address")
	configFile   = flag.String("config", "", "yaml config file, defaults are used when empty")
	dbDir        = flag.String("db", "", "session database directory, overrides storage.path of the config")
	debug        = flag.Bool("debug", false, "development logger with debug level")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
	useRateLimit = flag.Bool("ratelimit", false, "use rate limit")
)

//	@title			navtraffic lintangbs API
//	@version		1.0
//	@description	congestion rewriting for navigated routes: decrease, increase and restore the congestion ahead of the driver

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	log, err := logger.New(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if *dbDir != "" {
		cfg.Storage.Path = *dbDir
	}
	ranges, err := cfg.Congestion.RangeGroup()
	if err != nil {
		log.Fatal("congestion ranges", zap.Error(err))
	}

	backend, err := openBackend(cfg.Storage)
	if err != nil {
		log.Fatal("open session store", zap.Error(err))
	}
	store := kv.NewSessionStore(backend)
	defer store.Close()
	recordMemProfile(log, memprofile, "store_open")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if *useRateLimit {
		r.Use(mymiddleware.Limit)
	}

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"), //The url pointing to API definition
	))

	processor := congestion.NewProcessor(ranges, cfg.Congestion.HandlerOptions(), log.Named("congestion"))
	finder := slowtraffic.NewFinder(cfg.SlowTraffic.Options()...)
	trafficSvc := service.NewTrafficService(log.Named("service"), store, processor, finder, ranges, cfg.Snap.MaxDistanceMeters)

	rest.TrafficRouter(r, trafficSvc, m)

	srv := &http.Server{
		Addr:              *listenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", zap.String("addr", *listenAddr), zap.String("storage", cfg.Storage.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func openBackend(cfg config.StorageConfig) (kv.Backend, error) {
	if cfg.Backend == config.BackendPebble {
		db, err := kv.OpenPebble(cfg.Path, cfg.InMemory)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	db, err := kv.OpenBadger(cfg.Path, cfg.InMemory)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func recordMemProfile(log *zap.Logger, memprofile *string, name string) {
	if *memprofile != "" {
		*memprofile = strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("create memory profile", zap.Error(err))
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
