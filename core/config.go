package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	MongoConfig struct {
		URI      string
		Database string
		Timeout  time.Duration
	}

	Config struct {
		Debug    bool
		TestMode bool
		AppName  string
		Env      string
		Build    string

		DefaultFromEmail mail.Address
		SendgridApiKey   string
		AlertRecipient   string // default mentor inbox for risk alerts
		RollbarToken     string

		ModelDir string // classifier/scaler/feature-order artifacts

		Server ServerConfig
		Mongo  MongoConfig
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "EarlySignal")
	conf.SetDefault("build", "develop")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("alertRecipient", "mentor@localhost")
	conf.SetDefault("modelDir", filepath.Join(Getwd(), "assets", "models"))
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverPort", ":8000")
	conf.SetDefault("serverDebugHost", ":4000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("mongoUri", "mongodb://localhost:27017")
	conf.SetDefault("mongoDatabase", "student_signal")
	conf.SetDefault("mongoTimeout", 5*time.Second)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		AppName:          conf.GetString("appName"),
		Env:              env,
		Build:            conf.GetString("build"),
		DefaultFromEmail: mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridApiKey:   conf.GetString("sendgridApiKey"),
		AlertRecipient:   conf.GetString("alertRecipient"),
		RollbarToken:     conf.GetString("rollbarToken"),
		ModelDir:         conf.GetString("modelDir"),
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Port:            conf.GetString("serverPort"),
			DebugHost:       conf.GetString("serverDebugHost"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
		},
		Mongo: MongoConfig{
			URI:      conf.GetString("mongoUri"),
			Database: conf.GetString("mongoDatabase"),
			Timeout:  conf.GetDuration("mongoTimeout"),
		},
	}
}
