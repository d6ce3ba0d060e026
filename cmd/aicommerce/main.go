package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/Sanandrew123/AICommerce/config"
	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/dataset"
	"github.com/Sanandrew123/AICommerce/engine"
	"github.com/Sanandrew123/AICommerce/server"
	"github.com/Sanandrew123/AICommerce/store"
)

func main() {
	configPath := flag.String("config", "", "YAML 配置文件路径，缺省时用默认配置")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("load config", zap.Error(err))
		}
	}

	// 结果缓存：配了 Redis 用 Redis，否则内存缓存
	var cache core.Store
	if cfg.Redis.Addr != "" {
		cache, err = store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal("connect redis", zap.Error(err))
		}
	} else {
		cache = store.NewMemoryStore()
	}
	defer cache.Close()
	log.Info("result cache ready", zap.String("backend", cache.Name()))

	buildEngine := func(_ context.Context) (*engine.Engine, error) {
		snap, err := dataset.Load(cfg.Dataset.Products, cfg.Dataset.Events, log)
		if err != nil {
			return nil, err
		}
		return engine.Build(snap.Products, snap.Events,
			engine.WithMaxFeatures(cfg.Engine.MaxFeatures),
			engine.WithNGramMax(cfg.Engine.NGramMax),
			engine.WithRankCap(cfg.Engine.RankCap),
			engine.WithFilterRules(cfg.Engine.FilterRules...),
		)
	}

	eng, err := buildEngine(context.Background())
	if err != nil {
		log.Fatal("build engine", zap.Error(err))
	}
	log.Info("engine built",
		zap.Int("products", eng.NumProducts()),
		zap.Bool("model_available", eng.ModelAvailable()),
	)

	provider := engine.NewProvider(eng)
	srv := server.New(log, cache, provider, cfg.Cache, buildEngine)

	log.Info("listening", zap.String("addr", cfg.Listen))
	if err := http.ListenAndServe(cfg.Listen, srv.Routes()); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}
