package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/vihackerframework/vihacker-go/common"
	"github.com/vihackerframework/vihacker-go/pkg/config"
	"github.com/vihackerframework/vihacker-go/pkg/sqlite"
	"github.com/vihackerframework/vihacker-go/pkg/utils/jwt"
	"github.com/vihackerframework/vihacker-go/pkg/utils/logger"
	"github.com/vihackerframework/vihacker-go/route"
	"github.com/vihackerframework/vihacker-go/service"
	"go.uber.org/zap"
)

func init() {
	configFlag := flag.String("c", "", "config address")
	dbFlag := flag.String("db", "", "db path")
	versionFlag := flag.Bool("v", false, "version")

	flag.Parse()

	if *versionFlag {
		fmt.Printf("v%s\n", common.Version)
		os.Exit(0)
	}

	config.InitSetup(*configFlag)

	logger.LogInit(config.AppInfo.LogPath, config.AppInfo.LogSaveName, config.AppInfo.LogFileExt)

	if len(config.JWTInfo.Secret) > 0 {
		jwt.SetSecret(config.JWTInfo.Secret)
	} else {
		logger.Warn("jwt secret is not configured, tokens will not survive a restart")
	}

	if len(*dbFlag) == 0 {
		*dbFlag = config.AppInfo.DBPath
	}

	sqliteDB := sqlite.GetDb(*dbFlag)
	service.MyService = service.NewService(sqliteDB)
}

func main() {
	defer logger.Sync()

	r, err := route.InitRouter()
	if err != nil {
		panic(err)
	}

	listener, err := net.Listen("tcp", config.AppInfo.HTTPAddr)
	if err != nil {
		panic(err)
	}

	if supported, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.Error("Failed to notify systemd that vihacker service is ready", zap.Any("error", err))
	} else if supported {
		logger.Info("Notified systemd that vihacker service is ready")
	} else {
		logger.Info("This process is not running as a systemd service.")
	}

	logger.Info("vihacker service is listening...", zap.Any("address", listener.Addr().String()))

	s := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := s.Serve(listener); err != nil {
		panic(err)
	}
}
