package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the JSON Schema for navshell.yml from Config.
// Extensions are open-ended, so unknown top-level properties stay allowed.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		DoNotReference:            true,
	}

	schema := r.Reflect(&Config{})
	schema.Title = "navshell configuration"
	schema.Description = "Schema for navshell.yml and navshell.toml."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
