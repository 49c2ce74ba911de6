package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchIngester --dir ../interfaces/httpapi --output httpapi --outpkg httpapimock --filename match_ingester_mock.go
