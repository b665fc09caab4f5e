// Package docs holds the swagger description of the TrackBack API served at
// /swagger. Keep it in step with the handler annotations.
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
        "/auth/signup": {
            "post": {
                "description": "Create an account. Usernames are unique and case-sensitive.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.CredentialsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Verify credentials and issue a bearer token for report calls",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.CredentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/items/report": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Store a report for the authenticated user. A data-URL photo is moved to image hosting when configured.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Report a lost or found item",
                "parameters": [
                    {"description": "Report", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/items.ReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/items/all": {
            "get": {
                "description": "Every stored report in insertion order",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List all reports",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}
                }
            }
        },
        "/items/search": {
            "get": {
                "description": "Case-insensitive substring match on name and optional location",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Search reports",
                "parameters": [
                    {"type": "string", "description": "Name contains", "name": "q", "in": "query"},
                    {"type": "string", "description": "Location contains", "name": "location", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}
                }
            }
        },
        "/items/history/{username}": {
            "get": {
                "description": "Every report submitted by username, in insertion order",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Reports by user",
                "parameters": [
                    {"type": "string", "description": "Reporter", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.CredentialsRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "s3cret"},
                "username": {"type": "string", "example": "alice"}
            }
        },
        "items.ReportRequest": {
            "type": "object",
            "properties": {
                "contact": {"type": "string", "example": "alice@example.com"},
                "description": {"type": "string", "example": "Leather, two cards inside"},
                "id": {"type": "string", "example": "0192a6f4-3b1e-7c2d-9f00-1a2b3c4d5e6f"},
                "imageData": {"type": "string", "example": "data:image/png;base64,iVBORw0KGgo="},
                "kind": {"type": "string", "enum": ["found", "lost"], "example": "lost"},
                "location": {"type": "string", "example": "Library"},
                "name": {"type": "string", "example": "Red Wallet"}
            }
        },
        "models.Item": {
            "description": "Lost or found item report",
            "type": "object",
            "properties": {
                "contact": {"type": "string", "example": "alice@example.com"},
                "createdAt": {"type": "string", "example": "2025-01-01T00:00:00Z"},
                "description": {"type": "string", "example": "Leather, two cards inside"},
                "id": {"type": "string", "example": "0192a6f4-3b1e-7c2d-9f00-1a2b3c4d5e6f"},
                "imageData": {"type": "string"},
                "imageUrl": {"type": "string"},
                "kind": {"type": "string", "enum": ["found", "lost"], "example": "lost"},
                "location": {"type": "string", "example": "Library"},
                "name": {"type": "string", "example": "Red Wallet"},
                "reporter": {"type": "string", "example": "alice"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "AUTH_INVALID_TOKEN"},
                "error": {"type": "string", "example": "Invalid token"}
            }
        },
        "response.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "status": {"type": "string", "example": "success"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer <token>\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "TrackBack API",
	Description:      "Lost and found bulletin board",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
