package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/api"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/app"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/config"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()
	_ = godotenv.Load()
	if *cfgFile != "" {
		viper.SetConfigFile(*cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	router := api.SetupRouter(a)
	addr := fmt.Sprintf("%s:%d", cfg.WebHost, cfg.WebPort)
	go func() {
		log.Printf("http listening on %s", addr)
		if err := router.Run(addr); err != nil {
			log.Fatalf("http: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutdown")

	_ = a.Close()
}
