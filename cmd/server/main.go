package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/julisunkan/Ktrend/internal/analysis"
	"github.com/julisunkan/Ktrend/internal/api"
	"github.com/julisunkan/Ktrend/internal/config"
	"github.com/julisunkan/Ktrend/internal/db"
	"github.com/julisunkan/Ktrend/internal/export"
	"github.com/julisunkan/Ktrend/internal/keywords"
	"github.com/julisunkan/Ktrend/internal/marketplace"
	redisdb "github.com/julisunkan/Ktrend/internal/redis"
	"github.com/julisunkan/Ktrend/internal/research"
	"github.com/julisunkan/Ktrend/internal/session"
	"github.com/julisunkan/Ktrend/internal/trending"
	"github.com/julisunkan/Ktrend/internal/trends"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := export.LoadPDFLicense(key); err != nil {
			logger.WithError(err).Warn("[Main] PDF license not loaded, exports will fail")
		}
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.Sources.RequestsPerSec), 1)
	generator := keywords.NewGenerator(logger, limiter, cfg.Sources.UserAgent)

	analyzer := trends.NewAnalyzer(logger, generator, generator, cfg.Sources.UserAgent, cfg.Sources.NewsFeeds)
	if cfg.Sources.TrendingRSSURL != "" {
		analyzer.TrendingRSSURL = cfg.Sources.TrendingRSSURL
	}
	if cfg.Sources.StackExchangeURL != "" {
		analyzer.StackExchangeURL = cfg.Sources.StackExchangeURL
	}
	if cfg.Sources.PageviewsURL != "" {
		analyzer.SetPageviewsURL(cfg.Sources.PageviewsURL)
	}

	amazon := marketplace.NewAmazonAnalyzer(logger, limiter, cfg.Sources.UserAgent, analysis.CompetitionLevel)

	svc := &api.Services{
		Research:  research.NewService(generator, analyzer, amazon, logger),
		Sessions:  session.NewStore(rdb, cfg.Server.SessionSecret),
		Export:    export.NewManager(cfg.Export.Dir, logger),
		Questions: analyzer,
		Logger:    logger,
	}

	worker := trending.NewWorker(analyzer, rdb, logger)
	if err := worker.Start(cfg.Trending.RefreshHours); err != nil {
		logger.WithError(err).Warn("[Main] trending worker not started")
	}
	svc.Trending = worker

	r := api.SetupRouter(cfg, svc)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
