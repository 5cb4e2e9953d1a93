package main

import (
	"log/slog"
	"strings"

	internalhttp "github.com/driftpoint/beaconhub/internal/api/http"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Insecure compiled-in defaults. Every one of these must be overridden in a
// real deployment; main warns loudly when they are not.
const (
	DefaultSecret        = "beaconhub-dev-secret-do-not-deploy"
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
)

type Config struct {
	Log      LogConfig
	Http     internalhttp.Config
	Auth     AuthConfig
	Settings SettingsConfig
}

type AuthConfig struct {
	Secret            string `mapstructure:"secret"`
	AdminUsername     string `mapstructure:"admin_username"`
	AdminPassword     string `mapstructure:"admin_password"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

type SettingsConfig struct {
	Path string `mapstructure:"path"`
}

var config Config

func InitConfig() {
	_ = godotenv.Load()

	viper.SetConfigName("application")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./cmd/beaconhub-server")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log.level", "INFO")
	viper.SetDefault("http.port", 3000)
	viper.SetDefault("auth.secret", DefaultSecret)
	viper.SetDefault("auth.admin_username", DefaultAdminUsername)
	viper.SetDefault("auth.admin_password", DefaultAdminPassword)
	viper.SetDefault("auth.admin_password_hash", "")
	viper.SetDefault("settings.path", "config.json")

	_ = viper.BindEnv("http.port", "PORT")
	_ = viper.BindEnv("auth.secret", "AUTH_SECRET")
	_ = viper.BindEnv("auth.admin_username", "ADMIN_USERNAME")
	_ = viper.BindEnv("auth.admin_password", "ADMIN_PASSWORD")
	_ = viper.BindEnv("auth.admin_password_hash", "ADMIN_PASSWORD_HASH")
	_ = viper.BindEnv("settings.path", "CONFIG_PATH")

	// The config file is optional; env vars and defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		panic(err)
	}

	initLogger(config.Log.Level)

	warnInsecureDefaults()
}

func warnInsecureDefaults() {
	if config.Auth.Secret == DefaultSecret {
		slog.Warn("AUTH_SECRET is the compiled-in default; tokens are forgeable by anyone with the source")
	}
	if config.Auth.AdminPasswordHash == "" && config.Auth.AdminPassword == DefaultAdminPassword {
		slog.Warn("Admin credentials are the compiled-in defaults; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}
}
