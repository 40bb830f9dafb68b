package store

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_store.go github.com/showsync/showsync/pkg/store Store
