// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API banner",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}}}
            }
        },
        "/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/clients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "List clients",
                "parameters": [{"type": "string", "name": "status_filter", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Client"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Create a client",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Client"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Client"}}}
            }
        },
        "/clients/statistics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Client counters per status",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}}}
            }
        },
        "/clients/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Global order and debt totals",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/analytics.Summary"}}}
            }
        },
        "/clients/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Get a client",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Update a client",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "No fields to update"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Delete a client",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/clients/{id}/comment": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Update a client's comment",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/clients/{id}/action-status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Set action status flags",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/client-status-types": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["client-status-types"], "summary": "List client status types", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["client-status-types"], "summary": "Create a client status type", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/client-status-types/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["client-status-types"], "summary": "Get a client status type", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["client-status-types"], "summary": "Update a client status type", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["client-status-types"], "summary": "Delete a client status type", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/action-status-types": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["action-status-types"], "summary": "List action status types", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["action-status-types"], "summary": "Create an action status type", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/action-status-types/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["action-status-types"], "summary": "Get an action status type", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["action-status-types"], "summary": "Update an action status type", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["action-status-types"], "summary": "Delete an action status type", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/daily-reports": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["daily-reports"], "summary": "List daily reports, newest first", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["daily-reports"], "summary": "Create a daily report", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/daily-reports/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["daily-reports"], "summary": "Get a daily report", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["daily-reports"], "summary": "Update a daily report", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["daily-reports"], "summary": "Delete a daily report", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "analytics.Summary": {
            "type": "object",
            "properties": {
                "total_debt": {"type": "number"},
                "total_expected_amount": {"type": "number"},
                "total_expected_sets": {"type": "integer"},
                "total_ordered_amount": {"type": "number"},
                "total_ordered_sets": {"type": "integer"}
            }
        },
        "domain.Client": {
            "type": "object",
            "properties": {
                "action_status": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "amount_this_month": {"type": "number"},
                "client_status": {"type": "string"},
                "comment": {"type": "string"},
                "created_at": {"type": "string"},
                "crm_link": {"type": "string"},
                "debt": {"type": "number"},
                "expected_order_amount": {"type": "number"},
                "expected_order_sets": {"type": "integer"},
                "first_name": {"type": "string"},
                "id": {"type": "string"},
                "last_contact_date": {"type": "string"},
                "last_name": {"type": "string"},
                "phone": {"type": "string"},
                "sets_ordered_this_month": {"type": "integer"},
                "task_description": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "id": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "full_name": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "CRM API",
	Description:      "Client tracking with status taxonomies and aggregates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
