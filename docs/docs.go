package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/blogs": {
            "get": {
                "tags": ["blogs"],
                "summary": "List blog posts",
                "description": "List every post, optionally only those whose title equals the query value",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact title match",
                        "name": "title",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/Post"}
                        }
                    },
                    "500": {
                        "description": "Record store failure",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            },
            "post": {
                "tags": ["blogs"],
                "summary": "Create a blog post",
                "description": "name, surname and a valid email are mandatory; any other field is stored as sent",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "post",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PostPayload"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/CreatePostResponse"}
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            }
        },
        "/blogs/{id}": {
            "get": {
                "tags": ["blogs"],
                "summary": "Get post by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["blogs"],
                "summary": "Replace a blog post",
                "description": "Overwrites every client field of the post; the id always comes from the path",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "post", "required": true, "schema": {"$ref": "#/definitions/PostPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}},
                    "404": {"description": "Unknown id with strict replace", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["blogs"],
                "summary": "Delete a blog post",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "PostPayload": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "title": {"type": "string", "example": "Notes on the Analytical Engine"},
                "name": {"type": "string", "example": "Ada"},
                "surname": {"type": "string", "example": "Lovelace"},
                "email": {"type": "string", "example": "ada@example.com"}
            }
        },
        "Post": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "id": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "title": {"type": "string"}
            }
        },
        "CreatePostResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "field": {"type": "string"},
                            "message": {"type": "string"}
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "postkeeper API",
	Description:      "Blog posts kept in a single JSON file",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
