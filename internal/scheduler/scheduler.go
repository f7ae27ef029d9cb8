package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/davemarr/asset-inventory/internal/repo"
	"github.com/robfig/cron/v3"
)

// queryTimeout bounds each report run so a stuck store cannot pile up jobs.
const queryTimeout = 30 * time.Second

// Run starts the warranty-expiry reporter: at each cron tick it logs every
// non-retired asset whose warranty expires within the next windowDays days.
// The job is purely observational; it never writes to the store. The returned
// cron can be stopped during shutdown.
func Run(assets *repo.AssetRepo, cronExpr string, windowDays int) (*cron.Cron, error) {
	c := cron.New()

	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		list, err := assets.ListExpiringWarranties(ctx, windowDays)
		if err != nil {
			slog.Error("warranty report: query failed", "err", err)
			return
		}
		if len(list) == 0 {
			slog.Info("warranty report: nothing expiring", "window_days", windowDays)
			return
		}
		for _, a := range list {
			slog.Warn("warranty expiring",
				"asset_id", a.ID,
				"name", a.Name,
				"serial_number", a.SerialNumber,
				"assigned_to", a.AssignedTo,
				"warranty_expiry", a.WarrantyExpiry)
		}
	}

	if _, err := c.AddFunc(cronExpr, job); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	c.Start()
	slog.Info("warranty report scheduled", "cron", cronExpr, "window_days", windowDays)
	return c, nil
}
