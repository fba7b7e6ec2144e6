// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "GrndWrk Backend",
    "description": "Quotes, appointment scheduling and lead management for a landscaping business",
    "version": "1.0"
  },
  "basePath": "/",
  "securityDefinitions": {
    "AdminKey": {"type": "apiKey", "in": "header", "name": "X-Admin-Key"}
  },
  "tags": [
    {"name": "public", "description": "Quote widget and scheduling page"},
    {"name": "leads", "description": "Operator dashboard"},
    {"name": "settings"},
    {"name": "analytics"}
  ],
  "paths": {}
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
