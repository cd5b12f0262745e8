package jellyfin

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_jellyfin_client.go sweeparr/pkg/jellyfin ClientInterface
