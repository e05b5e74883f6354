// Command arcats-serve hosts the browser build with the headers the camera
// and WebXR need.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/webserve"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("ARCATS_LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	configPath := flag.String("config", "arcats.json", "path to the rules file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	srv := webserve.New(cfg.Server.StaticDir)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadConfig reads the rules file, applies environment overrides and
// validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.FromEnv(cfg); err != nil {
		return nil, fmt.Errorf("bad environment override: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
