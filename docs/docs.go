// Package docs registers the OpenAPI description of the taskboard HTTP API
// with swag, so gin-swagger can serve it under /swagger/.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness and task count",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.Health"}}
                }
            }
        },
        "/tasks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "List tasks, filtered by status and sorted by due date",
                "parameters": [
                    {"enum": ["All", "Pending", "In Progress", "Completed"], "type": "string", "default": "All", "name": "status", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "default": "asc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Task"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Error"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Create a task",
                "parameters": [
                    {"name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.TaskInsert"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationError"}},
                    "403": {"description": "Read-only mode", "schema": {"$ref": "#/definitions/handlers.Error"}},
                    "500": {"description": "Save failed", "schema": {"$ref": "#/definitions/handlers.Error"}}
                }
            }
        },
        "/tasks/completed": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "List completed tasks",
                "parameters": [
                    {"enum": ["asc", "desc"], "type": "string", "default": "asc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Task"}}}
                }
            }
        },
        "/tasks/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Count tasks per status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TaskStats"}}
                }
            }
        },
        "/tasks/reload": {
            "post": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Reload the board from storage",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.Reload"}}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Get a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Task"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Error"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Change fields of a task",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.TaskUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Error"}},
                    "500": {"description": "Save failed", "schema": {"$ref": "#/definitions/handlers.Error"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Remove a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Error"}},
                    "500": {"description": "Save failed", "schema": {"$ref": "#/definitions/handlers.Error"}}
                }
            }
        },
        "/reports/tasks.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["reports"],
                "summary": "Board report as PDF",
                "parameters": [
                    {"enum": ["All", "Pending", "In Progress", "Completed"], "type": "string", "default": "All", "name": "status", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "default": "asc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}}
                }
            }
        }
    },
    "definitions": {
        "models.Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "In Progress", "Completed"]},
                "due_date": {"type": "string", "example": "2024-01-10"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.TaskInsert": {
            "type": "object",
            "required": ["title", "due_date"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "In Progress", "Completed"]},
                "due_date": {"type": "string", "example": "2024-01-10"}
            }
        },
        "models.TaskUpdate": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "In Progress", "Completed"]},
                "due_date": {"type": "string", "example": "2024-01-10"}
            }
        },
        "models.TaskStats": {
            "type": "object",
            "properties": {
                "pending": {"type": "integer"},
                "inProgress": {"type": "integer"},
                "completed": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handlers.Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.ValidationError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handlers.Health": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "tasks": {"type": "integer"}}
        },
        "handlers.Reload": {
            "type": "object",
            "properties": {
                "outcome": {"type": "string", "enum": ["ok", "empty", "corrupt", "unavailable"]},
                "count": {"type": "integer"},
                "warning": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Taskboard API",
	Description:      "Personal task board: tasks with a status and a due date.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
