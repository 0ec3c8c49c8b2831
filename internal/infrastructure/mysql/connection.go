package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"ventas/internal/config"

	driver "github.com/go-sql-driver/mysql"
)

// DriverConfig translates the database settings into a driver config.
// ClientFoundRows makes UPDATE report matched rather than changed rows, which
// the repositories rely on to tell "not found" from "unchanged".
func DriverConfig(cfg config.DatabaseConfig) *driver.Config {
	dc := driver.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dc.DBName = cfg.Name
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.ClientFoundRows = true
	return dc
}

func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	connector, err := driver.NewConnector(DriverConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("building connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
