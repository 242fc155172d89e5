package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"img2puz/internal/app"
	"img2puz/internal/config"
	"img2puz/internal/db"
	"img2puz/internal/transport"
	"img2puz/internal/web/components"
	"img2puz/sql/schema"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	components.Version = fmt.Sprintf("%d", time.Now().Unix())

	dbConn, err := sql.Open("sqlite", cfg.DBPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		log.Fatal(err)
		return
	}
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal(err)
		return
	}

	// Run migrations from embedded FS
	goose.SetBaseFS(schema.Migrations)
	if err := goose.Up(dbConn, "."); err != nil {
		log.Fatal(err)
		return
	}

	queries := db.New(dbConn)
	service := app.NewService(queries, dbConn, cfg.AppOptions())
	defer service.Shutdown()
	server := transport.NewServer(service, dbConn, cfg.MaxUploadBytes, cfg.IsProduction())

	log.Printf("Server starting in %s mode on http://localhost:%s\n", cfg.Env, cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, server.Router); err != nil {
		log.Fatal(err)
	}
}
