package main

import (
	"log"

	"ramptest/webui"
)

func main() {
	cfg := webui.LoadConfig()
	r := webui.NewRouter(cfg)
	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
