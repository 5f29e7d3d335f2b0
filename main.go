package main

//go:generate swag init

import (
	"log/slog"
	"os"
)

// @title           Term Deposit API
// @version         1.0.0
// @description     API for composing, previewing and submitting term deposit requests.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	if err := rootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
