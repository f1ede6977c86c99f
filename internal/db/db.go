// Package db opens the gorm database the ingest side persists to.
package db

import (
	"fmt"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/kittyguard/harmreport/internal/chatlog"
)

// Connect opens the configured database and migrates the chat log schema.
// driver is "mysql" or "sqlite"; dsn is a mysql DSN or a sqlite file path.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "mysql":
		dial = mysql.Open(dsn)
	case "", "sqlite":
		dial = gormsqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER=%q", driver)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if err := gdb.AutoMigrate(&chatlog.Entry{}, &chatlog.Job{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}
