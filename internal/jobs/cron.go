package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Djberg2/GrndWrkv0/internal/metrics"
	"github.com/Djberg2/GrndWrkv0/internal/overlay"
)

// CronManager runs periodic maintenance.
type CronManager struct {
	cron    *cron.Cron
	overlay overlay.Overlay
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewCronManager(o overlay.Overlay, m *metrics.Metrics, logger zerolog.Logger) *CronManager {
	return &CronManager{
		cron:    cron.New(),
		overlay: o,
		metrics: m,
		logger:  logger,
	}
}

// SetupJobs registers the overlay audit on schedule (cron spec or
// "@every 15m" form).
func (cm *CronManager) SetupJobs(schedule string) error {
	if schedule == "" {
		schedule = "@every 15m"
	}
	_, err := cm.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		cm.AuditOverlay(ctx)
	})
	return err
}

// AuditOverlay publishes the number of overlay entries still waiting for a
// successful remote write and warns while any remain.
func (cm *CronManager) AuditOverlay(ctx context.Context) map[overlay.Field]int {
	pending, err := cm.overlay.Pending(ctx)
	if err != nil {
		cm.logger.Error().Err(err).Msg("overlay audit failed")
		return nil
	}
	total := 0
	for _, f := range overlay.Fields {
		cm.metrics.SetOverlayPending(string(f), pending[f])
		total += pending[f]
	}
	if total > 0 {
		ev := cm.logger.Warn().Int("total", total)
		for f, n := range pending {
			ev = ev.Int(string(f), n)
		}
		ev.Msg("lead changes held only in overlay")
	}
	return pending
}

func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop waits for running jobs to finish.
func (cm *CronManager) Stop() {
	<-cm.cron.Stop().Done()
}
