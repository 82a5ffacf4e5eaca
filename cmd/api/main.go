package main

import (
	"log"

	"github.com/devzera/bear-blog/internal/server"
)

func main() {
	srv := server.NewServer()
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
