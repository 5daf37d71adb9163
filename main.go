package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codewords/internal/ai"
	"github.com/robalobadob/codewords/internal/httpserver"
	"github.com/robalobadob/codewords/internal/store"
	"github.com/robalobadob/codewords/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("words", words.Count()).Msg("dictionary loaded")

	aiClient := ai.NewClientFromEnv()
	if !aiClient.Available() {
		log.Info().Msg("no AI_API_KEY set; themed boards disabled, using dictionary only")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, aiClient)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting codewords server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
