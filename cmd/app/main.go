package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ticoencargo/cartera/internal/app"
	"github.com/ticoencargo/cartera/internal/config"
	"github.com/ticoencargo/cartera/internal/store"
	"github.com/ticoencargo/cartera/internal/view"
	xhttp "github.com/ticoencargo/cartera/pkg/http"
	"github.com/ticoencargo/cartera/pkg/logger"
	"github.com/ticoencargo/cartera/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		var hostname string
		hostname, err = os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
		if err != nil {
			logger.Error("failed to create prometheus metrics", "error", err)
			return
		}
		go func() {
			prom.ListenAndServe(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}()
	}

	storeClient, err := store.NewClient(&store.Config{
		BaseURL: config.Get().StoreURL,
		APIKey:  config.Get().StoreAPIKey,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		logger.Error("failed to create store client", "error", err)
		return
	}

	application := app.New(storeClient)

	// initial load; failed collections come up empty and the UI still
	// renders
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	application.Load(loadCtx)
	cancel()

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		return
	}
	handler := view.NewHandler(application, renderer)

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 15))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	view.RegisterRoutes(s.Router, handler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
