package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tmpfiles/internal/config"
	"tmpfiles/internal/console"
	"tmpfiles/internal/control"
	"tmpfiles/internal/handler"
	"tmpfiles/internal/middleware"
	"tmpfiles/internal/oe"
)

type Service struct {
	label    string
	features []string
	server   *http.Server
}
type Services []Service

func main() {
	// logger
	logger := console.NewLogger(os.Stdout, control.LogLevelInfo)

	// config
	flags, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		logger.Fatal(`config error: %s`, err)
	}
	if err := logger.SetLevelFromString(flags.LogLevel); err != nil {
		logger.Fatal(`log level error: %s`, err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		logger.Fatal(`hostname: error: %s`, err)
	}
	logger.Info(`tmpfiles %s`, hostname)

	// store
	var registerer prometheus.Registerer
	if flags.Prometheus {
		registerer = prometheus.DefaultRegisterer
	}
	store := oe.NewFsStore(flags.Root, logger, registerer)
	if err := store.EnsureExists(); err != nil {
		logger.Fatal(`store error: %s`, err)
	}
	logger.Info(`store %s`, store.Base())

	errorLog := log.New(control.NewHttpLogWriter(logger), ``, 0)

	// services
	var services Services

	// http
	{
		features := []string{}
		router := chi.NewRouter()
		router.Use(middleware.Always(console.NewLogFormatter(`http`, logger), flags.Compression)...)
		if flags.Prometheus {
			router.Use(middleware.Prometheus(`http`, registerer))
			features = append(features, `prometheus`)
		}
		if flags.Compression >= 0 {
			features = append(features, `compress`)
		}
		handler.NewGateway(store, logger).Mount(router)
		sort.Strings(features)
		services = append(services, Service{label: `http`, features: features, server: &http.Server{
			Addr:         flags.Http,
			Handler:      router,
			ErrorLog:     errorLog,
			IdleTimeout:  flags.TimeoutIdle,
			ReadTimeout:  flags.TimeoutRead,
			WriteTimeout: flags.TimeoutWrite,
		}})
	}

	// ctrl
	if flags.CtrlEnabled() {
		features := []string{}
		router := chi.NewRouter()
		// health checks poll constantly; keep them out of the request log
		logger.Trim(`/health`)
		router.Use(middleware.Control(flags.CtrlLogger, console.NewLogFormatter(`ctrl`, logger))...)
		health := handler.NewHealth(store.Base())
		router.Get(`/health`, health.Liveness)
		router.Get(`/health/ready`, health.Readiness)
		router.HandleFunc(`/log`, handler.Log(logger))
		if flags.Prometheus {
			router.Mount(`/metrics/prometheus`, promhttp.Handler())
			features = append(features, `prometheus`)
		}
		router.NotFound(handler.NotFound)
		router.MethodNotAllowed(handler.MethodNotAllowed)
		sort.Strings(features)
		services = append(services, Service{label: `ctrl`, features: features, server: &http.Server{
			Addr:         flags.Ctrl,
			Handler:      router,
			ErrorLog:     errorLog,
			IdleTimeout:  flags.TimeoutIdle,
			ReadTimeout:  flags.TimeoutRead,
			WriteTimeout: flags.TimeoutWrite,
		}})
	} else {
		logger.Info(`ctrl.disabled`)
	}

	// start
	for _, service := range services {
		service := service
		go func() {
			connect := service.server.Addr
			if strings.IndexRune(connect, ':') == 0 {
				connect = `localhost` + connect
			}
			features := ``
			if len(service.features) > 0 {
				features = ` ` + strings.Join(service.features, ` `)
			}
			logger.Info(`%s.up http://%s/%s`, service.label, connect, features)
			if err := service.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal(`%s.serve error: %s`, service.label, err)
			}
			logger.Info(`%s.down`, service.label)
		}()
	}

	// wait
	<-func(signals chan os.Signal) <-chan os.Signal {
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		return signals
	}(make(chan os.Signal, 1))

	// halt
	wg := sync.WaitGroup{}
	for _, service := range services {
		service := service
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), flags.TimeoutShutdown)
			defer cancel()
			if err := service.server.Shutdown(ctx); err != nil {
				logger.Error(`%s.shutdown error: %s`, service.label, err)
			}
		}()
	}
	wg.Wait()
}
