// Package docs is generated by swag init from the annotations in cmd/api and
// internal/api/handler. Regenerate with:
//
//	swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a new user",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/users/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user by ID",
                "parameters": [{"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/users/{userId}/modules": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Replace enabled tracker modules",
                "parameters": [{"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/users/{userId}/entries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "List day entries",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "cursor", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/users/{userId}/entries/{date}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Get the entry for one day",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Create or replace the entry for one day",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            },
            "delete": {
                "tags": ["entries"],
                "summary": "Delete the entry for one day",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/users/{userId}/analytics/statistics": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Aggregate statistics", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{userId}/analytics/triggers": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Delayed trigger patterns", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{userId}/analytics/food-patterns": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Delayed food patterns", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{userId}/analytics/fungal": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Fungal onset analysis", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/{userId}/analytics/stress": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Stress impact", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/{userId}/analytics/sleep": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Sleep quality impact", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/{userId}/analytics/weather": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Weather impact", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/{userId}/analytics/nickel": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Nickel load analysis", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{userId}/analytics/foods": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Trigger or safe foods", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/users/{userId}/analytics/compare": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Compare recent and previous periods", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{userId}/insights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Generate flare insights",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "502": {"description": "Bad Gateway"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/users/{userId}/insights/feedback": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["insights"],
                "summary": "Rate generated insights",
                "responses": {"204": {"description": "No Content"}, "422": {"description": "Unprocessable Entity"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Flare Tracker API",
	Description:      "Record daily severity, foods and optional factors, then analyse which triggers precede flares.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
