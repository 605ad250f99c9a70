// internal/checks/credentials/oauth-client/models.go
package oauthclient

const (
	CheckID  = "oauth-client"
	Category = "credentials"
)

// clientSecretsSchema matches the client-secrets file downloaded from the
// Google cloud console, with either an "installed" or a "web" block.
const clientSecretsSchema = `{
  "type": "object",
  "properties": {
    "installed": {"$ref": "#/definitions/block"},
    "web": {"$ref": "#/definitions/block"}
  },
  "definitions": {
    "block": {
      "type": "object",
      "required": ["client_id", "client_secret", "auth_uri", "token_uri"],
      "properties": {
        "client_id": {"type": "string", "minLength": 1},
        "project_id": {"type": "string"},
        "auth_uri": {"type": "string"},
        "token_uri": {"type": "string"},
        "client_secret": {"type": "string", "minLength": 1},
        "redirect_uris": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`
