// Package swagger serves the API document and the Swagger UI.
package swagger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	YAMLPath = "/openapi.yml"
	JSONPath = "/openapi.json"
)

// Document is a validated OpenAPI document kept in both encodings.
type Document struct {
	spec *openapi3.T
	yaml []byte
	json []byte
}

// Load parses raw YAML and validates it against the OpenAPI 3 schema.
func Load(ctx context.Context, raw []byte) (*Document, error) {
	loader := openapi3.NewLoader()
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	encoded, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return &Document{spec: spec, yaml: raw, json: encoded}, nil
}

func (d *Document) Spec() *openapi3.T {
	return d.spec
}

func (d *Document) ServeYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(d.yaml)
}

func (d *Document) ServeJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(d.json)
}

// Handler serves the Swagger UI pointed at the YAML document.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(YAMLPath),
	)
}
