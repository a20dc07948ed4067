package main

import (
	"log"

	"roulette_client/internal/app"
)

func main() {
	a := app.NewApp()
	err := a.Run()
	if err != nil {
		log.Fatalf("app stopped: %v", err)
	}
}
