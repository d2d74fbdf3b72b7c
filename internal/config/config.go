package config

import (
	"flag"
	"os"
	"time"

	loggerConfig "github.com/iurnickita/coffeewallet/internal/logger/config"
	serviceConfig "github.com/iurnickita/coffeewallet/internal/service/config"
	storeConfig "github.com/iurnickita/coffeewallet/internal/store/config"
)

type Config struct {
	Service serviceConfig.Config
	Store   storeConfig.Config
	Logger  loggerConfig.Config
}

func GetConfig() Config {
	cfg := Config{
		Service: serviceConfig.Config{
			ASAPLead:         20 * time.Minute,
			GiftCardValidity: 365 * 24 * time.Hour,
		},
		Store:  storeConfig.Config{DatabasePath: "coffeewallet.db"},
		Logger: loggerConfig.Config{LogLevel: "info"},
	}

	flag.StringVar(&cfg.Store.DatabasePath, "d", cfg.Store.DatabasePath, "snapshot database path")
	flag.StringVar(&cfg.Logger.LogLevel, "l", cfg.Logger.LogLevel, "log level")
	flag.Parse()

	if env := os.Getenv("DATABASE_PATH"); env != "" {
		cfg.Store.DatabasePath = env
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		cfg.Logger.LogLevel = env
	}

	return cfg
}
