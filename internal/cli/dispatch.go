package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/cyclecart/internal/i18n"
	"github.com/terraincognita07/cyclecart/internal/services"
)

type DispatchCmd struct {
	Date     string `help:"Day to dispatch for (YYYY-MM-DD). Defaults to today."`
	BotToken string `help:"Telegram bot token." env:"TELEGRAM_BOT_TOKEN"`
	ShopURL  string `help:"Storefront link appended to reminders." env:"SHOP_URL"`
	Language string `help:"Fallback message language." default:"en" env:"DEFAULT_LANGUAGE"`
}

func (cmd *DispatchCmd) Run(ctx *Context) error {
	day, err := ctx.day(cmd.Date)
	if err != nil {
		return err
	}

	notifier := ctx.Notifier
	if notifier == nil {
		telegram := services.NewTelegramNotifier(cmd.BotToken)
		if !telegram.Enabled() {
			return errors.New("TELEGRAM_BOT_TOKEN is required for dispatch")
		}
		notifier = telegram
	}

	messages, err := i18n.NewEmbeddedManager(cmd.Language)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	repos, closeDB, err := ctx.openRepositories()
	if err != nil {
		return err
	}
	defer closeDB()

	dispatcher := services.NewReminderDispatcher(repos.CycleRecords, repos.ReminderSubscriptions, notifier, messages, ctx.location()).
		WithShopURL(cmd.ShopURL)
	result, err := dispatcher.RunOnce(context.Background(), day)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(ctx.Out, "%s: due=%d sent=%d skipped=%d failed=%d\n",
		services.FormatISODate(day), result.Due, result.Sent, result.Skipped, result.Failed)
	return err
}
