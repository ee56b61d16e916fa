// workers/stats_export_worker.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"basketball-league/services"
	"basketball-league/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatsSnapshot is the JSON document uploaded on every run.
type StatsSnapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Users       []SnapshotUser `json:"users"`
}

type SnapshotUser struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	LoginCount     int64  `json:"login_count"`
	TotalTimeSpent string `json:"total_time_spent"`
	IsOnline       bool   `json:"is_online"`
}

// StatsExportWorker periodically uploads the site statistics to object
// storage. It only reads league data.
type StatsExportWorker struct {
	sessions  *services.SessionService
	store     utils.ObjectStore
	interval  time.Duration
	clock     clockwork.Clock
	keyPrefix string
}

func NewStatsExportWorker(sessions *services.SessionService, store utils.ObjectStore, interval time.Duration, clock clockwork.Clock) *StatsExportWorker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StatsExportWorker{
		sessions:  sessions,
		store:     store,
		interval:  interval,
		clock:     clock,
		keyPrefix: "statistics",
	}
}

// Start schedules the export and stops the scheduler once ctx is done.
func (w *StatsExportWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler(gocron.WithClock(w.clock))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if _, err := w.ExportOnce(ctx); err != nil {
				log.Error().Err(err).Msg("[StatsExport] export failed")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule export: %w", err)
	}

	sched.Start()
	log.Info().Dur("interval", w.interval).Msg("🔁 statistics export scheduled")

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("[StatsExport] scheduler shutdown")
		}
	}()
	return nil
}

// ExportOnce uploads one JSON snapshot and its spreadsheet twin and returns
// the URL of the JSON object.
func (w *StatsExportWorker) ExportOnce(ctx context.Context) (string, error) {
	stats, err := w.sessions.SiteStatistics()
	if err != nil {
		return "", err
	}

	now := w.clock.Now().UTC()
	snapshot := StatsSnapshot{GeneratedAt: now, Users: make([]SnapshotUser, 0, len(stats))}
	for _, st := range stats {
		snapshot.Users = append(snapshot.Users, SnapshotUser{
			ID:             st.ID,
			Username:       st.Username,
			LoginCount:     st.LoginCount,
			TotalTimeSpent: utils.FormatDuration(st.TotalTimeSpent),
			IsOnline:       st.IsOnline,
		})
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	var sheet bytes.Buffer
	if err := services.WriteStatisticsXLSX(&sheet, stats); err != nil {
		return "", err
	}

	base := fmt.Sprintf("%s/%s", w.keyPrefix, now.Format("20060102T150405Z"))
	url, err := w.store.PutObject(ctx, base+".json", "application/json", body)
	if err != nil {
		return "", err
	}
	if _, err := w.store.PutObject(ctx, base+".xlsx", xlsxContentType, sheet.Bytes()); err != nil {
		return "", err
	}

	log.Info().Str("url", url).Int("users", len(stats)).Msg("✅ statistics exported")
	return url, nil
}
