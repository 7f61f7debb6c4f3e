// Package api holds the OpenAPI document the HTTP server is generated from.
//
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,server -package servers -o ../internal/generated/servers/server.gen.go openapi.yml
package api

import _ "embed"

//go:embed openapi.yml
var OpenAPI []byte
