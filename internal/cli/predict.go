package cli

import (
	"fmt"
	"time"

	"github.com/terraincognita07/cyclecart/internal/services"
)

type PredictCmd struct {
	Start []string `help:"Cycle start date (YYYY-MM-DD). Repeat or comma-separate." required:""`
	Today string   `help:"Day to evaluate the reminder against (YYYY-MM-DD). Defaults to today."`
}

func (cmd *PredictCmd) Run(ctx *Context) error {
	starts := make([]time.Time, 0, len(cmd.Start))
	for _, raw := range cmd.Start {
		start, err := services.ParseISODate(raw, ctx.location())
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", raw, err)
		}
		starts = append(starts, start)
	}

	today, err := ctx.day(cmd.Today)
	if err != nil {
		return err
	}

	timeline := services.CycleTimeline{Intervals: services.Reconcile(starts)}
	prediction := services.PredictTimeline(timeline.Intervals)
	snapshot := services.CycleSnapshot{PersistRequest: services.BuildPersistencePayload(timeline, prediction)}
	if prediction != nil {
		snapshot.ReminderDueToday = services.IsReminderDueToday(prediction.ReminderDate, today)
	}
	return writeJSON(ctx.Out, snapshot)
}
