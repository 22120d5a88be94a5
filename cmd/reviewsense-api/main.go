// @title         ReviewSense API
// @version       0.1.0
// @description   Sentiment labels for product reviews, single texts and CSV uploads

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewsense/internal/adapters/onnx"
	"reviewsense/internal/adapters/tokenizer/hf"
	"reviewsense/internal/core/batcher"
	"reviewsense/internal/core/labels"
	"reviewsense/internal/modkit/repokit"
	"reviewsense/internal/platform/config"
	"reviewsense/internal/platform/logger"
	phttp "reviewsense/internal/platform/net/http"
	"reviewsense/internal/platform/store"

	"reviewsense/internal/services/api"
	metahttp "reviewsense/internal/services/api/meta/http"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	modelCfg := root.Prefix("MODEL_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// tokenizer and batch budgets
	tok, err := hf.Load(hf.Config{Path: modelCfg.MustString("TOKENIZER_PATH")})
	if err != nil {
		l.Panic().Err(err).Msg("tokenizer load failed")
	}
	b := batcher.New(tok)
	b.Head = modelCfg.MayInt("HEAD", batcher.DefaultHead)
	b.Tail = modelCfg.MayInt("TAIL", batcher.DefaultTail)
	b.MaxLength = modelCfg.MayInt("MAX_LENGTH", batcher.DefaultMaxLength)

	modelPath := modelCfg.MustString("ONNX_PATH")
	clf, err := onnx.Open(onnx.Config{
		ModelPath:    modelPath,
		LibraryPath:  modelCfg.MayString("ORT_LIB", ""),
		PoolSize:     modelCfg.MayInt("POOL_SIZE", 1),
		IntraThreads: modelCfg.MayInt("INTRA_THREADS", 1),
		InterThreads: modelCfg.MayInt("INTER_THREADS", 1),
		SeqLen:       b.MaxLength,
		NumLabels:    labels.Count,
	})
	if err != nil {
		l.Panic().Err(err).Msg("onnx open failed")
	}
	defer func() {
		if err := clf.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close classifier")
		}
		if err := onnx.Shutdown(); err != nil {
			l.Error().Err(err).Msg("failed to shut down onnxruntime")
		}
	}()

	// stores are optional, labels work without either
	pgOn := pgCfg.MayBool("ENABLED", false)
	chOn := chCfg.MayBool("ENABLED", false)
	sc := store.Config{
		AppName: "reviewsense-api",
		PG: store.PGConfig{
			Enabled:     pgOn,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQuery:   time.Duration(pgCfg.MayInt("SLOW_MS", 500)) * time.Millisecond,
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			StartupWait: pgCfg.MayDuration("STARTUP_WAIT", 15*time.Second),
		},
		CH: store.CHConfig{
			Enabled:   chOn,
			ClientTag: "api",
		},
	}
	if pgOn {
		sc.PG.URL = pgCfg.MustString("DBURL")
	}
	if chOn {
		sc.CH.URL = chCfg.MustString("DBURL")
	}
	st, err := store.Open(ctx, sc, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	locale := labels.ParseLocale(root.Prefix("LABELS_").MayString("LOCALE", string(labels.LocaleEN)))
	names := make([]string, 0, labels.Count)
	for _, lb := range labels.All() {
		names = append(names, lb.Name(locale))
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(root.Prefix("CORE_"))

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Classifier:     clf,
			Batcher:        b,
			Model: metahttp.ModelResponse{
				Loaded:    true,
				Path:      modelPath,
				Head:      b.Head,
				Tail:      b.Tail,
				MaxLength: b.MaxLength,
				NumLabels: clf.NumLabels(),
				PoolSize:  clf.PoolSize(),
				Locale:    string(locale),
				Labels:    names,
			},
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			UploadMaxBytes: int64(apiCfg.MayInt("UPLOAD_MAX_BYTES", api.DefaultUploadMaxBytes)),
			MaxInFlight:    apiCfg.MayInt("MAX_IN_FLIGHT", 0),
			Timeout:        apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Error().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	}
}
