package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecart/internal/db"
	"github.com/terraincognita07/cyclecart/internal/services"
	"gorm.io/gorm"
)

type Context struct {
	DBPath   string
	Location *time.Location
	Out      io.Writer
	Now      func() time.Time
	Notifier services.Notifier
}

func (ctx *Context) location() *time.Location {
	if ctx.Location == nil {
		return time.UTC
	}
	return ctx.Location
}

func (ctx *Context) now() time.Time {
	if ctx.Now == nil {
		return time.Now()
	}
	return ctx.Now()
}

func (ctx *Context) day(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return services.DateAtLocation(ctx.now(), ctx.location()), nil
	}
	day, err := services.ParseISODate(raw, ctx.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return day, nil
}

func (ctx *Context) openRepositories() (*db.Repositories, func(), error) {
	database, err := db.OpenSQLite(ctx.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	return db.NewRepositories(database), func() { closeDatabase(database) }, nil
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
