package servers

import (
	"fmt"

	"storefront/api"

	"github.com/getkin/kin-openapi/openapi3"
)

// BaseURL is the prefix every route in the document is served under.
const BaseURL = "/api/v1"

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return doc, nil
}
