package cli

import (
	"context"

	"github.com/terraincognita07/cyclecart/internal/services"
)

type ShowCmd struct {
	User  string `help:"Customer id." required:""`
	Today string `help:"Day to evaluate the reminder against (YYYY-MM-DD). Defaults to today."`
}

func (cmd *ShowCmd) Run(ctx *Context) error {
	today, err := ctx.day(cmd.Today)
	if err != nil {
		return err
	}

	repos, closeDB, err := ctx.openRepositories()
	if err != nil {
		return err
	}
	defer closeDB()

	service := services.NewCycleService(repos.CycleRecords, ctx.location())
	timeline, err := service.Load(context.Background(), cmd.User)
	if err != nil {
		return err
	}
	return writeJSON(ctx.Out, service.Snapshot(timeline, today))
}
