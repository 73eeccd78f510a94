package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/dkoval-dev/goblog/internal/config"
	"github.com/dkoval-dev/goblog/internal/handler"
	"github.com/dkoval-dev/goblog/internal/logger"
	"github.com/dkoval-dev/goblog/internal/middleware"
	"github.com/dkoval-dev/goblog/internal/router"
	"github.com/dkoval-dev/goblog/internal/service"
	"github.com/dkoval-dev/goblog/internal/storage/pg"
	"github.com/dkoval-dev/goblog/internal/token"
)

// resolvePort prefers the PORT environment variable over the configured port,
// keeping the configured one when PORT is empty or not an integer.
func resolvePort(configPort int, envPort string) int {
	if envPort == "" {
		return configPort
	}
	port, err := strconv.Atoi(envPort)
	if err != nil {
		logger.Log.Error("invalid PORT value, using config port", "PORT", envPort, "error", err)
		return configPort
	}
	return port
}

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	storage, err := pg.New(cfg)
	if err != nil {
		logger.Log.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer storage.Cleanup()

	codec := token.New(cfg.SessionKey(), cfg.SessionTTL())
	sessionMw := middleware.NewSession(storage, codec, int(cfg.SessionTTL().Seconds()), cfg.Public.SecureCookies)

	auth := service.NewAuth(storage, storage)
	blog := service.NewBlog(storage, cfg.Public.PostsPerPage)

	h := handler.New(auth, blog)
	r := router.New(h, sessionMw, cfg)

	httpPort := resolvePort(cfg.Public.HTTPPort, os.Getenv("PORT"))

	logger.Log.Info("server started", "port", httpPort)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", httpPort), r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
