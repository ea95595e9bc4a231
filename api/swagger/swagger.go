package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Interactive timetable allocation, conflict detection and export service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Editor", "description": "Interactive placement, resizing and removal of allocations"},
        {"name": "Timetable", "description": "Projected timetable rendering and conflict listing"},
        {"name": "Catalog", "description": "Read-only class offerings and rooms"},
        {"name": "Exports", "description": "CSV/PDF export generation and signed downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/schedules/{scheduleId}/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Render the timetable grid through a projection",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "axis", "in": "query", "type": "string", "enum": ["all", "room", "section", "teacher", "course"]},
                    {"name": "key", "in": "query", "type": "string"},
                    {"name": "building", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{scheduleId}/conflicts": {
            "get": {
                "tags": ["Timetable"],
                "summary": "List every advisory conflict in the schedule",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{scheduleId}/allocations": {
            "post": {
                "tags": ["Editor"],
                "summary": "Place a class offering on the timetable",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlaceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{scheduleId}/allocations/{id}/resize": {
            "put": {
                "tags": ["Editor"],
                "summary": "Move an allocation's end time",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{scheduleId}/allocations/{id}/duration": {
            "put": {
                "tags": ["Editor"],
                "summary": "Grow or shrink an allocation",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustDurationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{scheduleId}/allocations/{id}": {
            "delete": {
                "tags": ["Editor"],
                "summary": "Remove an allocation",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/schedules/{scheduleId}/allocations/{id}/conflicts": {
            "get": {
                "tags": ["Editor"],
                "summary": "List advisory conflicts for one allocation",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{scheduleId}/import": {
            "post": {
                "tags": ["Editor"],
                "summary": "Replace the whole schedule with imported allocations",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{scheduleId}/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export the timetable view as CSV or PDF",
                "parameters": [
                    {"name": "scheduleId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a generated export via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/catalog/offerings": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List class offerings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/offerings/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get a class offering",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/rooms": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List bookable rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/rooms/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get a room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PlaceRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"},
                "roomId": {"type": "string"},
                "day": {"type": "string"},
                "startTime": {"type": "string"},
                "durationMinutes": {"type": "integer"}
            },
            "required": ["classId", "day", "startTime"]
        },
        "ResizeRequest": {
            "type": "object",
            "properties": {
                "endTime": {"type": "string"}
            },
            "required": ["endTime"]
        },
        "AdjustDurationRequest": {
            "type": "object",
            "properties": {
                "deltaMinutes": {"type": "integer"}
            },
            "required": ["deltaMinutes"]
        },
        "ImportScheduleRequest": {
            "type": "object",
            "properties": {
                "allocations": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ImportAllocationRequest"}
                }
            },
            "required": ["allocations"]
        },
        "ImportAllocationRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"},
                "roomId": {"type": "string"},
                "day": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            },
            "required": ["classId", "day", "startTime", "endTime"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "axis": {"type": "string"},
                "key": {"type": "string"},
                "building": {"type": "string"},
                "title": {"type": "string"}
            },
            "required": ["format"]
        },
        "Allocation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "scheduleId": {"type": "string"},
                "classId": {"type": "string"},
                "roomId": {"type": "string"},
                "courseCode": {"type": "string"},
                "courseName": {"type": "string"},
                "section": {"type": "string"},
                "teacherName": {"type": "string"},
                "day": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "building": {"type": "string"},
                "room": {"type": "string"},
                "capacity": {"type": "integer"}
            }
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "enum": ["ROOM", "TEACHER", "SECTION"]},
                "withAllocationId": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
