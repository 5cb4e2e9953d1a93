package main

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerURL         string        `mapstructure:"server_url"`
	ClientID          string        `mapstructure:"client_id"`
	Status            string        `mapstructure:"status"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
}

var config Config

func InitConfig() {
	_ = godotenv.Load()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:3000")
	viper.SetDefault("client_id", "")
	viper.SetDefault("status", "idle")
	viper.SetDefault("heartbeat_interval", 30*time.Second)
	viper.SetDefault("poll_interval", 10*time.Second)

	_ = viper.BindEnv("server_url", "SERVER_URL")
	_ = viper.BindEnv("client_id", "CLIENT_ID")
	_ = viper.BindEnv("status", "STATUS")
	_ = viper.BindEnv("heartbeat_interval", "HEARTBEAT_INTERVAL")
	_ = viper.BindEnv("poll_interval", "POLL_INTERVAL")

	if err := viper.Unmarshal(&config); err != nil {
		panic(err)
	}

	if config.ClientID == "" {
		config.ClientID = uuid.NewString()
	}
}
