// Package apidocs embeds the OpenAPI description of the HTTP API.
package apidocs

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
