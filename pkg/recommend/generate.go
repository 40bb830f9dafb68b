package recommend

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_recommend_client.go github.com/showsync/showsync/pkg/recommend ClientInterface
