package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           AdPilot API
// @version         0.1.0
// @description     Amazon Ads performance sync, profitability reports, and human-approved change proposals.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
