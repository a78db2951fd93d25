package swaggerkit

import "net/http"

// openAPIDoc is the hand maintained contract for the public surface
const openAPIDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "unirank API", "version": "1.0.0", "description": "University rankings listing and import pipeline"},
  "servers": [{"url": "/api/v1"}],
  "components": {
    "securitySchemes": {
      "AdminKey": {"type": "apiKey", "in": "header", "name": "X-Admin-Key"}
    }
  },
  "paths": {
    "/universities": {
      "get": {
        "summary": "List universities",
        "parameters": [
          {"name": "country", "in": "query", "description": "truncated to 100 characters", "schema": {"type": "string"}},
          {"name": "year", "in": "query", "schema": {"type": "string"}},
          {"name": "search", "in": "query", "description": "truncated to 200 characters", "schema": {"type": "string"}},
          {"name": "sortBy", "in": "query", "schema": {"type": "string", "default": "rank"}},
          {"name": "sortOrder", "in": "query", "description": "DESC (any case) or ASC; anything else is ASC", "schema": {"type": "string", "default": "ASC"}},
          {"name": "page", "in": "query", "schema": {"type": "integer", "default": 1}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 20}}
        ],
        "responses": {"200": {"description": "page of universities"}}
      },
      "delete": {
        "summary": "Delete every university",
        "security": [{"AdminKey": []}],
        "responses": {"200": {"description": "deleted count"}, "401": {"description": "unauthorized"}}
      }
    },
    "/universities/{id}": {
      "get": {
        "summary": "Get one university",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}],
        "responses": {"200": {"description": "university"}, "404": {"description": "not found"}}
      }
    },
    "/countries": {"get": {"summary": "Distinct countries", "responses": {"200": {"description": "sorted countries"}}}},
    "/years": {"get": {"summary": "Distinct years", "responses": {"200": {"description": "years, newest first"}}}},
    "/import": {
      "post": {
        "summary": "Import a csv, xlsx or xls file",
        "security": [{"AdminKey": []}],
        "requestBody": {"content": {"multipart/form-data": {"schema": {"type": "object", "properties": {"file": {"type": "string", "format": "binary"}, "year": {"type": "integer"}}}}}},
        "responses": {"200": {"description": "import summary"}, "400": {"description": "validation error"}, "422": {"description": "undecodable file"}}
      }
    },
    "/import/cohorts/{year}": {
      "post": {
        "summary": "Replace one year from the remote sheet",
        "security": [{"AdminKey": []}],
        "parameters": [{"name": "year", "in": "path", "required": true, "schema": {"type": "integer"}}],
        "responses": {"200": {"description": "import summary"}, "503": {"description": "remote unavailable"}}
      }
    },
    "/import/template": {"get": {"summary": "Download the xlsx template", "responses": {"200": {"description": "xlsx attachment"}}}}
  }
}`

var docReader = func() string { return openAPIDoc }

// serveDocJSON serves the OpenAPI document for the UI
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}
