package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/five82/coolctl/internal/logging"
	"github.com/five82/coolctl/internal/remotesim"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.String("addr", "127.0.0.1:8080", "listen address")
	pflag.String("password", "", "basic-auth password for the admin user")
	pflag.Bool("online", true, "initial device connectivity")
	pflag.String("log-level", "info", "log level")
	pflag.Parse()

	viper.SetEnvPrefix("remotesim")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "remotesim: %v\n", err)
		return 1
	}

	log, err := logging.New(viper.GetString("log-level"), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "remotesim: %v\n", err)
		return 1
	}
	defer log.Close()

	password := viper.GetString("password")
	if password == "" {
		log.Errorw("password is required (--password or REMOTESIM_PASSWORD)")
		return 1
	}

	gin.SetMode(gin.ReleaseMode)
	dev := remotesim.NewDevice(viper.GetBool("online"))
	srv := &http.Server{
		Addr:              viper.GetString("addr"),
		Handler:           remotesim.NewRouter(dev, password, log),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("simulator listening", "addr", srv.Addr, "online", dev.Online())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server failed", "err", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Infow("shutting down simulator")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown failed", "err", err)
		return 1
	}
	return 0
}
