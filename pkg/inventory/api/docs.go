package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// mountDocs serves the OpenAPI document and the swagger UI under /docs.
func (h *Handler) mountDocs(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, openAPIDocument)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))
}

// openAPIDocument describes the HTTP surface for the swagger UI.
var openAPIDocument = map[string]any{
	"openapi": "3.0.0",
	"info": map[string]any{
		"title":   "Inventory API",
		"version": "1.0.0",
	},
	"paths": map[string]any{
		"/register": map[string]any{
			"post": map[string]any{
				"summary": "Register a new item",
				"requestBody": map[string]any{
					"content": map[string]any{
						"multipart/form-data": map[string]any{
							"schema": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"inventory_name": map[string]any{"type": "string"},
									"description":    map[string]any{"type": "string"},
									"photo":          map[string]any{"type": "string", "format": "binary"},
								},
								"required": []string{"inventory_name"},
							},
						},
					},
				},
				"responses": map[string]any{
					"201": map[string]any{"description": "Item created"},
					"400": map[string]any{"description": "Name missing"},
				},
			},
		},
		"/inventory": map[string]any{
			"get": map[string]any{
				"summary": "List all items",
				"responses": map[string]any{
					"200": map[string]any{"description": "JSON array of items"},
				},
			},
		},
		"/inventory/{id}": map[string]any{
			"get": map[string]any{
				"summary":    "Get one item by ID",
				"parameters": idParameter,
				"responses": map[string]any{
					"200": map[string]any{"description": "JSON item"},
					"404": map[string]any{"description": "Not found"},
				},
			},
			"put": map[string]any{
				"summary":    "Update item metadata",
				"parameters": idParameter,
				"responses": map[string]any{
					"200": map[string]any{"description": "Updated JSON item"},
					"404": map[string]any{"description": "Not found"},
				},
			},
			"delete": map[string]any{
				"summary":    "Delete an item",
				"parameters": idParameter,
				"responses": map[string]any{
					"200": map[string]any{"description": "Deleted"},
					"404": map[string]any{"description": "Not found"},
				},
			},
		},
		"/inventory/{id}/photo": map[string]any{
			"get": map[string]any{
				"summary":    "Get the item photo",
				"parameters": idParameter,
				"responses": map[string]any{
					"200": map[string]any{"description": "Photo bytes (image/jpeg)"},
					"404": map[string]any{"description": "Not found"},
				},
			},
			"put": map[string]any{
				"summary":    "Replace the item photo",
				"parameters": idParameter,
				"responses": map[string]any{
					"200": map[string]any{"description": "Photo updated"},
					"400": map[string]any{"description": "No file uploaded"},
					"404": map[string]any{"description": "Not found"},
				},
			},
		},
		"/search": map[string]any{
			"post": map[string]any{
				"summary": "Find an item by ID",
				"responses": map[string]any{
					"200": map[string]any{"description": "JSON item"},
					"404": map[string]any{"description": "Not found"},
				},
			},
		},
	},
}

var idParameter = []any{
	map[string]any{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "string"},
	},
}
