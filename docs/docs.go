// Package docs holds the Swagger specification served at /swagger/*.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler
// annotations.
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
        "/todos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "List todos",
                "parameters": [
                    {"type": "string", "name": "x-auth", "in": "header", "required": true, "description": "Session token"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.todoListResponse"}},
                    "401": {"description": "Missing or invalid token"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Create a todo",
                "parameters": [
                    {"type": "string", "name": "x-auth", "in": "header", "required": true, "description": "Session token"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createTodoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Todo"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/todos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Get a todo",
                "parameters": [
                    {"type": "string", "name": "x-auth", "in": "header", "required": true, "description": "Session token"},
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Todo id"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.todoEnvelope"}},
                    "401": {"description": "Missing or invalid token"},
                    "404": {"description": "Unknown, foreign or malformed id"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"type": "string", "name": "x-auth", "in": "header", "required": true, "description": "Session token"},
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Todo id"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.todoEnvelope"}},
                    "401": {"description": "Missing or invalid token"},
                    "404": {"description": "Unknown, foreign or malformed id"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Update a todo",
                "parameters": [
                    {"type": "string", "name": "x-auth", "in": "header", "required": true, "description": "Session token"},
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Todo id"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateTodoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.todoEnvelope"}},
                    "400": {"description": "Malformed id or empty text"},
                    "401": {"description": "Missing or invalid token"},
                    "404": {"description": "Unknown or foreign id"}
                }
            }
        },
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token in the x-auth response header", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token in the x-auth response header", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Invalid credentials: empty body, no x-auth header"}
                }
            }
        },
        "/users/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "parameters": [
                    {"type": "string", "name": "x-auth", "in": "header", "required": true, "description": "Session token"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/users/me/token": {
            "delete": {
                "tags": ["users"],
                "summary": "Logout",
                "parameters": [
                    {"type": "string", "name": "x-auth", "in": "header", "required": true, "description": "Session token"}
                ],
                "responses": {
                    "200": {"description": "Token revoked"},
                    "400": {"description": "Revocation failed"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        }
    },
    "definitions": {
        "domain.Todo": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "owner": {"type": "string"},
                "text": {"type": "string"},
                "completed": {"type": "boolean"},
                "completedAt": {"type": "integer", "x-nullable": true}
            }
        },
        "handler.createTodoRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"}
            }
        },
        "handler.updateTodoRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "completed": {"type": "boolean"}
            }
        },
        "handler.todoEnvelope": {
            "type": "object",
            "properties": {
                "todo": {"$ref": "#/definitions/domain.Todo"}
            }
        },
        "handler.todoListResponse": {
            "type": "object",
            "properties": {
                "todos": {"type": "array", "items": {"$ref": "#/definitions/domain.Todo"}}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Todo API",
	Description:      "Multi-tenant to-do list backend with token-based authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
