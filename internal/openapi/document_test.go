package openapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuild_RefsResolve(t *testing.T) {
	doc := Build(Info{Title: "Packs REST API", Version: "v1"})

	var visit func(s *Schema)
	visit = func(s *Schema) {
		if s == nil {
			return
		}
		if s.Ref != "" {
			name := strings.TrimPrefix(s.Ref, "#/components/schemas/")
			_, ok := doc.Components.Schemas[name]
			assert.True(t, ok, "dangling ref %s", s.Ref)
		}
		visit(s.Items)
		for _, p := range s.Properties {
			visit(p)
		}
	}

	for path, item := range doc.Paths {
		for method, op := range item {
			assert.NotEmpty(t, op.OperationID, "%s %s", method, path)
			assert.NotEmpty(t, op.Responses, "%s %s", method, path)
			if op.RequestBody != nil {
				for _, mt := range op.RequestBody.Content {
					visit(mt.Schema)
				}
			}
			for _, resp := range op.Responses {
				for _, mt := range resp.Content {
					visit(mt.Schema)
				}
			}
		}
	}
	for _, s := range doc.Components.Schemas {
		visit(s)
	}
}

func TestBuild_UniqueOperationIDs(t *testing.T) {
	doc := Build(Info{Title: "t", Version: "v"})
	seen := map[string]bool{}
	for _, item := range doc.Paths {
		for _, op := range item {
			assert.False(t, seen[op.OperationID], "duplicate operationId %s", op.OperationID)
			seen[op.OperationID] = true
		}
	}
}

func TestDocument_Render(t *testing.T) {
	doc := Build(Info{Title: "Packs REST API", Version: "v1"})

	js, err := doc.JSON()
	require.NoError(t, err)
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(js, &fromJSON))
	assert.Equal(t, "3.0.3", fromJSON["openapi"])
	assert.Contains(t, string(js), `"$ref": "#/components/schemas/Pack"`)

	ym, err := doc.YAML()
	require.NoError(t, err)
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(ym, &fromYAML))
	info := fromYAML["info"].(map[string]any)
	assert.Equal(t, "Packs REST API", info["title"])
	assert.Contains(t, string(ym), "$ref: '#/components/schemas/Pack'")
}
