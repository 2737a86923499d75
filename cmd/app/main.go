package main

import (
	"flag"
	"log"
	"os"

	"MacroBoard/internal/di"
	"MacroBoard/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s series=%d nyfed_tp10=%v", cfg.Environment, len(cfg.Series.Fred), cfg.Series.NYFedTP10)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
