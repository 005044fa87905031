// Package docs регистрирует описание API для http-swagger
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
        "/v1/registration": {
            "post": {
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entity.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.UserProfile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responder.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/responder.ValidationResponse"}}
                }
            }
        },
        "/v1/login": {
            "post": {
                "tags": ["sessions"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entity.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/responder.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/responder.MessageResponse"}}
                }
            }
        },
        "/v1/logout": {
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["sessions"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responder.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/responder.MessageResponse"}}
                }
            }
        },
        "/v1/users": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.UserProfile"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/responder.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Update current user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entity.UpdateUserRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.UpdateUserResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/responder.ValidationResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Delete current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responder.MessageResponse"}}
                }
            }
        },
        "/v1/events": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["events"],
                "summary": "List own events",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.Event"}}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["events"],
                "summary": "Create event",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entity.EventRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.Event"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/responder.ValidationResponse"}}
                }
            }
        },
        "/v1/events/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["events"],
                "summary": "Get event by ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Event"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responder.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["events"],
                "summary": "Update event",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entity.EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Event"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responder.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/responder.ValidationResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["events"],
                "summary": "Delete event",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responder.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responder.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entity.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Meeting"},
                "description": {"type": "string", "example": "Meeting with Projector"},
                "date_start": {"type": "string", "example": "2016-07-22T14:05:29Z"},
                "date_finish": {"type": "string", "example": "2016-07-22T15:05:29Z"},
                "user_id": {"type": "integer", "example": 1},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "entity.EventRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Meeting"},
                "description": {"type": "string", "example": "Meeting with Projector"},
                "date_start": {"type": "string", "example": "2016-07-22 14:05:29"},
                "date_finish": {"type": "string", "example": "2016-07-22 15:05:29"}
            }
        },
        "entity.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "user@example.com"},
                "password": {"type": "string", "example": "qwerty"}
            }
        },
        "entity.LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Logged in successfully"},
                "token": {"type": "string"}
            }
        },
        "entity.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "John Doe"},
                "email": {"type": "string", "example": "user@example.com"},
                "password": {"type": "string", "example": "qwerty"},
                "password_confirmation": {"type": "string", "example": "qwerty"}
            }
        },
        "entity.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Jane Doe"},
                "email": {"type": "string", "example": "newemail@example.com"},
                "password": {"type": "string"},
                "password_confirmation": {"type": "string"},
                "regenerate_token": {"type": "boolean"}
            }
        },
        "entity.UserProfile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "John Doe"},
                "email": {"type": "string", "example": "user@example.com"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/entity.Event"}}
            }
        },
        "entity.UpdateUserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/entity.Event"}},
                "token": {"type": "string"}
            }
        },
        "responder.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "Not authorized"}}
        },
        "responder.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "Event was successfully destroyed."}}
        },
        "responder.ValidationResponse": {
            "type": "object",
            "additionalProperties": {"type": "array", "items": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Events API",
	Description:      "API пользователей и их событий",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
