package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"clipforge/internal/adapter/repo"
	"clipforge/internal/http/handlers"
	"clipforge/internal/http/httpapi"
	"clipforge/internal/infra"
	"clipforge/internal/manifest"
	"clipforge/internal/manifest/repair"
	"clipforge/internal/providers/llm"
	"clipforge/internal/providers/tts"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	var completer repair.Completer
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(llm.Config{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Logger:  &logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure llm client")
		}
		completer = client
	} else {
		logger.Warn().Msg("gemini api key missing, llm repair tier disabled")
	}

	var synth handlers.Synthesizer
	if cfg.TTSBaseURL != "" {
		client, err := tts.NewClient(tts.Config{
			BaseURL: cfg.TTSBaseURL,
			APIKey:  cfg.TTSAPIKey,
			Logger:  &logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure tts client")
		}
		synth = client
	} else {
		logger.Warn().Msg("tts base url missing, voice preview disabled")
	}

	pipeline := repair.New(repair.Options{
		Completer:  completer,
		LLMTimeout: cfg.LLMRepairTimeout,
		Logger:     &logger,
	})
	compiler := manifest.NewCompiler(manifest.CompilerOptions{
		Pipeline:          pipeline,
		RenderCallbackURL: cfg.RenderCallbackURL,
		Logger:            &logger,
	})

	manifests := repo.NewManifestRepository(dbpool)
	app := handlers.NewApp(logger, compiler, manifests, synth)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
