// Package docs registers the Swagger 2.0 description of the HTTP API with swag.
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
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/token": {
            "post": {
                "description": "Accepts an OAuth2 password form or a JSON body and returns a bearer access token.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Access token", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "400": {"description": "Invalid request format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Incorrect username or password", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "description": "Creates an active user account. The password is stored as a bcrypt hash.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration information", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created user", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "400": {"description": "Invalid request or username/email already registered", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Students ordered by id. limit is capped at 100.",
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "List students",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Rows to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Maximum rows", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.StudentResponse"}}},
                    "400": {"description": "Invalid paging parameters", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Create a student",
                "parameters": [
                    {"description": "Student", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.StudentResponse"}},
                    "400": {"description": "Invalid request format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Student ID already registered", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Get a student",
                "parameters": [
                    {"type": "integer", "description": "Student primary key", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StudentResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}/grades": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["grades"],
                "summary": "List the grades of a student",
                "parameters": [
                    {"type": "integer", "description": "Student primary key", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.GradeResponse"}}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["grades"],
                "summary": "Add a grade to a student",
                "parameters": [
                    {"type": "integer", "description": "Student primary key", "name": "id", "in": "path", "required": true},
                    {"description": "Grade", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateGradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.GradeResponse"}},
                    "400": {"description": "Invalid request format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateGradeRequest": {
            "type": "object",
            "required": ["score", "subject"],
            "properties": {
                "score": {"type": "number"},
                "subject": {"type": "string", "maxLength": 100}
            }
        },
        "dto.CreateStudentRequest": {
            "type": "object",
            "required": ["name", "student_id"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "student_id": {"type": "string", "maxLength": 50}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "RES_001"},
                "details": {},
                "field": {"type": "string", "example": "student_id"},
                "message": {"type": "string", "example": "Student not found"},
                "severity": {"type": "string", "example": "ERROR"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "success": {"type": "boolean", "example": false},
                "timestamp": {"type": "string", "example": "2025-04-23T12:01:05.123Z"}
            }
        },
        "dto.GradeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "score": {"type": "number", "example": 95.5},
                "student_id": {"type": "integer", "example": 1},
                "subject": {"type": "string", "example": "Math"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string", "maxLength": 255},
                "password": {"type": "string", "maxLength": 72},
                "username": {"type": "string", "maxLength": 50}
            }
        },
        "dto.StudentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "John Doe"},
                "student_id": {"type": "string", "example": "STU001"}
            }
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "id": {"type": "integer", "example": 1},
                "is_active": {"type": "boolean", "example": true},
                "username": {"type": "string", "example": "alice"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Student Records API",
	Description:      "Users, students and grades behind bearer token authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
