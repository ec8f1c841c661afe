// Package metrics holds the Prometheus collectors for games, the word cache and the hall of fame.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	GamesStarted     *prometheus.CounterVec
	GamesFinished    *prometheus.CounterVec
	Guesses          *prometheus.CounterVec
	CacheRebuilds    prometheus.Counter
	CacheRebuildTime prometheus.Observer
	HallOfFameEvents *prometheus.CounterVec
	ActiveGame       prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{Name: "dejavu_games_started_total", Help: "Games started by kind"}, []string{"kind"})
		GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{Name: "dejavu_games_finished_total", Help: "Games finished by kind and outcome"}, []string{"kind", "outcome"})
		Guesses = promauto.NewCounterVec(prometheus.CounterOpts{Name: "dejavu_guesses_total", Help: "Guesses by result"}, []string{"result"})
		CacheRebuilds = promauto.NewCounter(prometheus.CounterOpts{Name: "dejavu_word_cache_rebuilds_total", Help: "Word frequency cache rebuilds"})
		CacheRebuildTime = promauto.NewHistogram(prometheus.HistogramOpts{Name: "dejavu_word_cache_rebuild_seconds", Help: "Word frequency cache rebuild duration", Buckets: prometheus.DefBuckets})
		HallOfFameEvents = promauto.NewCounterVec(prometheus.CounterOpts{Name: "dejavu_hall_of_fame_events_total", Help: "Hall of fame pins and unpins"}, []string{"action"})
		ActiveGame = promauto.NewGauge(prometheus.GaugeOpts{Name: "dejavu_active_game", Help: "1 while a game session is running"})
	})
}

// GameStarted counts a started game of the given kind.
func GameStarted(kind string) {
	if GamesStarted != nil {
		GamesStarted.WithLabelValues(kind).Inc()
	}
	if ActiveGame != nil {
		ActiveGame.Set(1)
	}
}

// GameFinished counts a finished game by kind and outcome.
func GameFinished(kind, outcome string) {
	if GamesFinished != nil {
		GamesFinished.WithLabelValues(kind, outcome).Inc()
	}
	if ActiveGame != nil {
		ActiveGame.Set(0)
	}
}

// Guess counts a processed guess.
func Guess(result string) {
	if Guesses != nil {
		Guesses.WithLabelValues(result).Inc()
	}
}

// CacheRebuilt records one word cache rebuild and its duration.
func CacheRebuilt(d time.Duration) {
	if CacheRebuilds != nil {
		CacheRebuilds.Inc()
	}
	if CacheRebuildTime != nil {
		CacheRebuildTime.Observe(d.Seconds())
	}
}

// HallOfFame counts a pin or unpin.
func HallOfFame(action string) {
	if HallOfFameEvents != nil {
		HallOfFameEvents.WithLabelValues(action).Inc()
	}
}
