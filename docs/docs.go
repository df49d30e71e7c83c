// Package docs registers the OpenAPI document served under /swagger.
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
        "/identity/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["identity"],
                "summary": "Sign in and receive an access token",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/identity/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["identity"],
                "summary": "Create an account with a role and job title",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.registerResponse"}}
                }
            }
        },
        "/identity/confirmemail": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["identity"],
                "summary": "Acknowledge an email confirmation",
                "parameters": [
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handler.confirmEmailRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/maplines": {
            "get": {
                "produces": ["application/json"],
                "tags": ["maplines"],
                "summary": "List map lines",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "integer", "in": "query", "name": "page", "description": "Page number (default 1)"},
                    {"type": "integer", "in": "query", "name": "limit", "description": "Page size (default 20, max 100)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listMapLinesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["maplines"],
                "summary": "Create a map line",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createMapLineRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.mapLineResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/v1/maplines/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["maplines"],
                "summary": "Get a map line",
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.mapLineResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["maplines"],
                "summary": "Delete a map line",
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.signInResult": {
            "type": "object",
            "properties": {
                "succeeded": {"type": "boolean"},
                "isLockedOut": {"type": "boolean"},
                "isNotAllowed": {"type": "boolean"},
                "requiresTwoFactor": {"type": "boolean"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "result": {"$ref": "#/definitions/handler.signInResult"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["username", "password", "role"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"},
                "jobTitle": {"type": "string"}
            }
        },
        "handler.identityError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "description": {"type": "string"}}
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {
                "succeeded": {"type": "boolean"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handler.identityError"}}
            }
        },
        "handler.confirmEmailRequest": {
            "type": "object",
            "properties": {"userId": {"type": "string"}, "token": {"type": "string"}}
        },
        "handler.createMapLineRequest": {
            "type": "object",
            "required": ["latSt1", "lonSt1", "latSt2", "lonSt2"],
            "properties": {
                "latSt1": {"type": "number"},
                "lonSt1": {"type": "number"},
                "latSt2": {"type": "number"},
                "lonSt2": {"type": "number"}
            }
        },
        "handler.pointResponse": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}
        },
        "handler.mapLineResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "start": {"$ref": "#/definitions/handler.pointResponse"},
                "end": {"$ref": "#/definitions/handler.pointResponse"},
                "lengthKm": {"type": "number"},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string"},
                "_links": {"type": "object", "properties": {"self": {"type": "string"}}}
            }
        },
        "handler.listMapLinesResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.mapLineResponse"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "rzdmap API",
	Description:      "Identity and railway map line service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
