package config

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_config_unmarshaler.go github.com/showsync/showsync/config ConfigUnmarshaler
