package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/config"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/database"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/migrations"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/server"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/version"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/worker"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting librarium", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	if err := initDataDir(cfg.DatabaseFilePath); err != nil {
		log.Err(err).Fatal("data directory error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	wrkr := worker.New(cfg, db)

	srv, err := server.New(cfg, db)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		// Extract actual port (useful when ServerPort is 0)
		actualPort := listener.Addr().(*net.TCPAddr).Port
		log.Info("server started", logger.Data{"port": actualPort})

		// Write port file for the frontend dev server to read
		if err := writePortFile(actualPort); err != nil {
			log.Err(err).Error("failed to write port file")
		}

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	wrkr.Start()
	log.Info("worker started")

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	wrkr.Shutdown()
	log.Info("worker shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}

// initDataDir makes sure the directory holding the SQLite file exists.
func initDataDir(databaseFilePath string) error {
	if databaseFilePath == ":memory:" {
		return nil
	}

	dir := filepath.Dir(databaseFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create data directory: %s", dir)
	}

	return nil
}

// writePortFile writes the server's actual port to tmp/api.port for the
// frontend dev server. Skips silently if tmp/ doesn't exist (e.g. in Docker).
func writePortFile(port int) error {
	if _, err := os.Stat("tmp"); os.IsNotExist(err) {
		return nil
	}
	return os.WriteFile("tmp/api.port", []byte(strconv.Itoa(port)), 0600)
}
