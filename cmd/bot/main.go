package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/dejavu/internal/common/clock"
	"github.com/KirkDiggler/dejavu/internal/common/logger"
	"github.com/KirkDiggler/dejavu/internal/common/metrics"
	"github.com/KirkDiggler/dejavu/internal/common/random"
	"github.com/KirkDiggler/dejavu/internal/common/uuid"
	"github.com/KirkDiggler/dejavu/internal/config"
	"github.com/KirkDiggler/dejavu/internal/handlers/discord"
	"github.com/KirkDiggler/dejavu/internal/repositories/hall_of_fame"
	"github.com/KirkDiggler/dejavu/internal/repositories/history"
	"github.com/KirkDiggler/dejavu/internal/repositories/leaderboard"
	"github.com/KirkDiggler/dejavu/internal/repositories/store"
	"github.com/KirkDiggler/dejavu/internal/services/game"
	hofService "github.com/KirkDiggler/dejavu/internal/services/hall_of_fame"
	"github.com/KirkDiggler/dejavu/internal/services/lexicon"
	"github.com/KirkDiggler/dejavu/internal/services/messaging"
	"github.com/KirkDiggler/dejavu/internal/services/moderation"
	"github.com/KirkDiggler/dejavu/internal/services/wordfreq"
	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Module("main").WithError(err).Fatal("failed to load config")
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	log := logger.Module("main")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	metrics.Init()
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
		log.WithField("addr", cfg.MetricsAddr).Info("serving metrics")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize the persistent store
	docStore, closeStore, err := newStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to create store")
	}
	defer closeStore()

	// Initialize repositories
	ledger, err := leaderboard.New(ctx, &leaderboard.Config{
		Store: docStore,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create leaderboard")
	}

	hallOfFame, err := hall_of_fame.New(ctx, &hall_of_fame.Config{
		Store: docStore,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create hall of fame")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.WithError(err).Fatal("failed to create Discord session")
	}

	historySource, err := history.NewDiscord(&history.DiscordConfig{
		Session: session,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create history source")
	}

	// Initialize services
	words, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load lexicon")
	}

	filter, err := moderation.New(nil)
	if err != nil {
		log.WithError(err).Fatal("failed to create moderation filter")
	}

	picker := random.New(nil)
	clk := &clock.DefaultClock{}

	wordIndex, err := wordfreq.New(ctx, &wordfreq.Config{
		Store:        docStore,
		History:      historySource,
		Random:       picker,
		Lexicon:      words,
		Clock:        clk,
		TTL:          cfg.WordCacheTTL,
		HistoryLimit: cfg.HistoryLimit,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create word index")
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Random: picker,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create messaging service")
	}

	notifier, err := discord.NewNotifier(&discord.NotifierConfig{
		Sender:    session,
		Messaging: messagingSvc,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create notifier")
	}

	gameSvc, err := game.New(&game.Config{
		Leaderboard:   ledger,
		History:       historySource,
		WordIndex:     wordIndex,
		Moderation:    filter,
		Notifier:      notifier,
		Random:        picker,
		Clock:         clk,
		UUIDGenerator: uuid.New(),
		MercyUserID:   cfg.MercyUserID,
		RoundTimeout:  cfg.RoundTimeout,
		RoundDelay:    roundDelay(cfg.RoundDelay),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create game service")
	}

	fetcher, err := discord.NewMessageFetcher(session)
	if err != nil {
		log.WithError(err).Fatal("failed to create message fetcher")
	}

	shareSvc, err := hofService.New(&hofService.Config{
		Repository: hallOfFame,
		Fetcher:    fetcher,
		Downloader: hofService.NewHTTPDownloader(nil),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create share service")
	}

	// Initialize Discord handlers
	dejavuCmd, err := discord.NewDejavuCommand(&discord.DejavuCommandConfig{
		GameService: gameSvc,
		Leaderboard: ledger,
		HallOfFame:  hallOfFame,
		Share:       shareSvc,
		Messaging:   messagingSvc,
		Random:      picker,
		Clock:       clk,
		PageSize:    cfg.HallOfFamePageSize,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create dejavu command")
	}

	reactions, err := discord.NewReactionHandler(&discord.ReactionConfig{
		HallOfFame: hallOfFame,
		Fetcher:    fetcher,
		Reactors:   fetcher,
		PinEmoji:   cfg.PinEmoji,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create reaction handler")
	}

	bot, err := discord.New(&discord.Config{
		Session:       session,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		GameService:   gameSvc,
		Dejavu:        dejavuCmd,
		Reactions:     reactions,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		log.WithError(err).Fatal("failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	// Commit the running game before the connection goes away
	if err := gameSvc.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("error stopping game")
	}

	if err := bot.Stop(); err != nil {
		log.WithError(err).Warn("error stopping bot")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("error stopping metrics server")
		}
	}

	log.Info("bot has been shut down")
}

// newStore opens the configured backend and returns its closer
func newStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		rs, err := store.NewRedis(&store.RedisConfig{
			RedisClient: client,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return rs, func() { _ = client.Close() }, nil

	case config.StoreSQLite:
		ss, err := store.NewSQLite(&store.SQLiteConfig{
			Path: cfg.SQLitePath,
		})
		if err != nil {
			return nil, nil, err
		}
		return ss, func() { _ = ss.Close() }, nil

	default:
		fs, err := store.NewFile(&store.FileConfig{
			Dir: cfg.DataDir,
		})
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

// roundDelay maps a configured zero delay to the game's "disabled" value
func roundDelay(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}
