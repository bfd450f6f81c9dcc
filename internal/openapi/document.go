// Package openapi describes the HTTP API as an OpenAPI 3.0.3 document.
package openapi

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Version is the OpenAPI specification version the document follows.
const Version = "3.0.3"

// Document is the root of an OpenAPI document.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Tags       []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

// Info carries the API title and version.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag groups operations in the rendered documentation.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]*Operation

// Operation describes one endpoint.
type Operation struct {
	Tags        []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string                `json:"summary" yaml:"summary"`
	OperationID string                `json:"operationId" yaml:"operationId"`
	Security    []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response   `json:"responses" yaml:"responses"`
}

// SecurityRequirement names a security scheme and its scopes.
type SecurityRequirement map[string][]string

// Parameter is a path or query parameter.
type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema   *Schema `json:"schema" yaml:"schema"`
}

// RequestBody describes a JSON request payload.
type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// Response describes one response status.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType wraps a schema for a content type.
type MediaType struct {
	Schema *Schema `json:"schema" yaml:"schema"`
}

// Schema is the subset of JSON Schema the document uses.
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string             `json:"format,omitempty" yaml:"format,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	ReadOnly    bool               `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	WriteOnly   bool               `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`
	Nullable    bool               `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	MinLength   *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
}

// Components holds reusable schemas and security schemes.
type Components struct {
	Schemas         map[string]*Schema        `json:"schemas" yaml:"schemas"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes" yaml:"securitySchemes"`
}

// SecurityScheme describes how requests authenticate.
type SecurityScheme struct {
	Type         string `json:"type" yaml:"type"`
	Scheme       string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	return b, nil
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	b, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi yaml: %w", err)
	}
	return b, nil
}

// Operations returns every "METHOD /path" pair in the document.
func (d *Document) Operations() []string {
	var ops []string
	for path, item := range d.Paths {
		for method := range item {
			ops = append(ops, fmt.Sprintf("%s %s", method, path))
		}
	}
	return ops
}
