package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/handfix/pkg/config"
	"github.com/charlie0129/handfix/pkg/events"
	"github.com/charlie0129/handfix/pkg/layer"
)

var (
	conf      config.Config
	hub       *events.Hub
	registry  *layer.Registry
	refresher *layer.Refresher
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/config", getConfig)
	router.GET("/version", getVersion)
	router.GET("/events", streamEvents)
	router.GET("/instances", listInstances)
	router.POST("/instances", createInstance)
	router.DELETE("/instances/:id", destroyInstance)
	router.POST("/instances/:id/locate", locateHandJoints)
	router.GET("/instances/:id/calibration", getCalibration)
	router.PUT("/instances/:id/reload", reloadCalibration)

	return router
}

// instanceOptions derives the options of new instances from the current
// config, so a SIGHUP affects instances created afterwards.
func instanceOptions() []layer.Option {
	opts := []layer.Option{
		layer.WithReloadEvery(uint16(conf.ReloadEvery())),
	}
	if !conf.AsyncReload() {
		opts = append(opts, layer.WithSynchronousReload())
	}
	return opts
}

func setup(c config.Config) {
	conf = c
	hub = events.NewHub()
	registry = layer.NewRegistry(hub, instanceOptions)
	refresher = layer.NewRefresher(func() error {
		if failed := registry.ReloadAll(); failed > 0 {
			return fmt.Errorf("%d instance(s) failed to reload calibration", failed)
		}
		return nil
	}, func(err error) {
		logrus.Debugf("scheduled calibration refresh: %v", err)
	})
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	c, err := config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(c.LogrusFields()).Infof("config loaded")

	setup(c)
	router := setupRoutes()

	if err := refresher.Schedule(conf.RefreshSchedule()); err != nil {
		return err
	}
	refresher.Start()

	// Receive SIGHUP to reload config and calibrations
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := conf.Load(); err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			if err := refresher.Schedule(conf.RefreshSchedule()); err != nil {
				logrus.Errorf("failed to apply refresh schedule: %v", err)
			}
			failed := registry.ReloadAll()
			logrus.WithFields(conf.LogrusFields()).WithField("failedCalibrations", failed).Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: router,
	}

	// A stale socket is left behind when the daemon was killed.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("failed to remove stale socket %s: %v", unixSocketPath, err)
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("stopping calibration refresher")
	refresher.Stop()

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	for _, id := range registry.List() {
		if err := registry.Destroy(id); err != nil {
			logrus.Warnf("failed to destroy instance %s: %v", id, err)
		}
	}

	logrus.Info("exiting")
	return nil
}
