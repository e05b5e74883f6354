package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chosenoffset.com/arcats/internal/ar/emulator"
	"chosenoffset.com/arcats/internal/audio"
	"chosenoffset.com/arcats/internal/camera"
	"chosenoffset.com/arcats/internal/config"
	"chosenoffset.com/arcats/internal/game"
	ebitenrender "chosenoffset.com/arcats/internal/render/ebiten"
	"chosenoffset.com/arcats/internal/sched"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(getEnv("ARCATS_LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	configPath := flag.String("config", "arcats.json", "path to the rules file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}
	if err := config.FromEnv(cfg); err != nil {
		log.Fatal().Err(err).Msg("bad environment override")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	loop := sched.New()
	manager := game.NewManager(game.Options{
		Config:   cfg,
		Renderer: renderer,
		Input:    inputMgr,
		Loader:   loader,
		Camera:   &camera.Synthetic{},
		AR:       emulator.New(loop, inputMgr),
		Chirp:    audio.NewChirp(0.5),
		Loop:     loop,
		TPS:      engine.TPS(),
	})

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	log.Info().Str("mode", cfg.Mode).Str("assets", cfg.AssetsDir).Msg("starting game")
	if err := engine.RunGame(manager); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
