// pkg/registry/schema.go
package registry

type CheckRegistry struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Checks      []CheckDefinition `json:"checks"`
}

type CheckDefinition struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Timeout     string   `json:"timeout"`
	RequiredEnv []string `json:"requiredEnv,omitempty"`
	ProbeURL    string   `json:"probeUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Schema is the JSON schema a registry file must satisfy before use.
const Schema = `{
  "type": "object",
  "required": ["version", "checks"],
  "properties": {
    "version": {"type": "string"},
    "lastUpdated": {"type": "string"},
    "checks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "displayName", "category", "severity", "enabled"],
        "properties": {
          "id": {"type": "string", "pattern": "^[a-z0-9-]+$"},
          "displayName": {"type": "string"},
          "description": {"type": "string"},
          "category": {"type": "string"},
          "severity": {"type": "string", "enum": ["fatal", "warning"]},
          "enabled": {"type": "boolean"},
          "timeout": {"type": "string"},
          "requiredEnv": {"type": "array", "items": {"type": "string"}},
          "probeUrl": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
