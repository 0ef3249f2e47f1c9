// Package openapi bundles the OpenAPI document served under /swagger.
package openapi

import _ "embed"

//go:embed airquery.swagger.json
var Document []byte
