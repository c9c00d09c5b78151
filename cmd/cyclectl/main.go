package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/cyclecart/internal/cli"
	"github.com/terraincognita07/cyclecart/internal/logger"
)

var CLI struct {
	DB       string `help:"SQLite database path." type:"path" default:"data/cyclecart.db" env:"DB_PATH"`
	TZ       string `help:"Reference time zone for calendar days." default:"UTC" env:"TZ"`
	LogLevel string `help:"Log level." default:"warn" env:"LOG_LEVEL"`

	Predict  cli.PredictCmd  `cmd:"" help:"Reconcile start dates and print the prediction without storing anything."`
	Show     cli.ShowCmd     `cmd:"" help:"Print a customer's stored cycle history."`
	Dispatch cli.DispatchCmd `cmd:"" help:"Send today's period reminders once."`
	Secret   cli.SecretCmd   `cmd:"" help:"Generate a SECRET_KEY value."`
	Token    cli.TokenCmd    `cmd:"" help:"Sign a customer token for local API testing."`
}

func main() {
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("cyclectl"),
		kong.Description("Admin tool for the cyclecart cycle tracking service"),
		kong.UsageOnError(),
	)

	if err := logger.Init(logger.Config{Level: CLI.LogLevel}); err != nil {
		ctx.FatalIfErrorf(err)
	}

	location, err := time.LoadLocation(CLI.TZ)
	if err != nil {
		ctx.Fatalf("invalid TZ %q: %v", CLI.TZ, err)
	}

	err = ctx.Run(&cli.Context{
		DBPath:   CLI.DB,
		Location: location,
		Out:      os.Stdout,
	})
	ctx.FatalIfErrorf(err)
}
