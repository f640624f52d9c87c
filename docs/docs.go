// Package docs registers the OpenAPI description of the JSON API with swag.
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
        "/events": {
            "get": {
                "description": "Events ordered by date. q filters by title substring (case-insensitive); date filters by calendar date. An unparseable date is ignored and reported in data.warning.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "Title substring", "name": "q", "in": "query"},
                    {"type": "string", "description": "Date (YYYY-MM-DD or natural language)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListEventsSuccessResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event by ID",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.GetEventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{id}/attendees": {
            "get": {
                "description": "Most recent registration first.",
                "produces": ["application/json"],
                "tags": ["attendees"],
                "summary": "List an event's attendees",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListAttendeesSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/report": {
            "get": {
                "produces": ["application/json"],
                "tags": ["report"],
                "summary": "Aggregate counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ReportSuccessResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.GetEventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Event"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ListAttendeesSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Attendee"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ListEventsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.SearchResult"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ReportSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Report"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.Attendee": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "event_id": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "registered_at": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "capacity": {"type": "integer"},
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "location": {"type": "string"},
                "tickets_sold": {"type": "integer"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Report": {
            "type": "object",
            "properties": {
                "total_attendees": {"type": "integer"},
                "total_events": {"type": "integer"},
                "total_tickets_sold": {"type": "integer"}
            }
        },
        "domain.SearchResult": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "warning": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
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
	Title:            "Event Registration API",
	Description:      "Read-only JSON access to events, attendees and the aggregate report.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
