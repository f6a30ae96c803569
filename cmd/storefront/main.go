package main

import (
	"context"
	"io"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if cfg.SeedDemo {
		if err := repos.SeedDemo(context.Background(), db); err != nil {
			log.Fatal(err)
		}
	}

	creds, err := services.CredentialsFor(cfg.PasswordScheme)
	if err != nil {
		log.Fatal(err)
	}

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		p, err := events.DialAMQP(cfg.AMQPURL, cfg.OrderQueue)
		if err != nil {
			log.Printf("[warn] order events disabled: %v", err)
		} else {
			pub = p
		}
	}
	defer pub.Close()

	app := handlers.NewApp(handlers.NewDeps(db, cfg, creds, pub))

	log.Printf("[http] listening on :%s (driver=%s)", cfg.Port, cfg.DBDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("[http] %v", err)
	}
}
