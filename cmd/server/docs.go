package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Trade Lifecycle API
// @version         0.1.0
// @description     Trade workflow transitions with a diffed audit trail.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
