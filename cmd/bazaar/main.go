package main

import (
	"log"

	"bazaar/internal/config"
	"bazaar/internal/http/handlers"
	applog "bazaar/internal/log"
	"bazaar/internal/repos"
)

func main() {
	cfg := config.Load()

	if err := applog.Setup(cfg.LogFile); err != nil {
		log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
	}
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	deps := handlers.NewDeps(db, cfg)
	app := handlers.NewApp(deps, handlers.Options{AccessLog: true})

	log.Printf("[http] listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
