package sonarr

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_sonarr_client.go sweeparr/pkg/sonarr ClientInterface
