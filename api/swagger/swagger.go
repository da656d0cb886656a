package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SchedLume API",
        "description": "Personal class schedule: CSV import, per-date overrides, notes and reminders",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Weekly base schedule import and export"},
        {"name": "Timetable", "description": "Resolved classes per date"},
        {"name": "Overrides", "description": "Per-date cancellations, changes and extra classes"},
        {"name": "Notes", "description": "Class notes and general dated notes"},
        {"name": "Settings", "description": "Preferences, reminders and data management"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/api/v1/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List base schedules",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/import": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Replace the base schedule from a CSV upload",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Imported", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing file", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Rejected, with row errors", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/validate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Validate a CSV upload without storing it",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Validation report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/export.csv": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download the base schedule as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/api/v1/schedules/template.csv": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download an import template",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "example", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/api/v1/schedules/export.pdf": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download a printable weekly grid",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/api/v1/timetable/days/{date}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Resolved classes for one date",
                "parameters": [
                    {"name": "date", "in": "path", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/weeks/{date}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Resolved week containing a date",
                "parameters": [
                    {"name": "date", "in": "path", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/months/{month}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Per-day class counts for a month",
                "parameters": [
                    {"name": "month", "in": "path", "type": "string", "required": true, "description": "YYYY-MM"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/calendar.ics": {
            "get": {
                "tags": ["Timetable"],
                "summary": "iCalendar feed of resolved classes",
                "produces": ["text/calendar"],
                "parameters": [
                    {"name": "start", "in": "query", "type": "string"},
                    {"name": "end", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "ICS file"},
                    "400": {"description": "Invalid range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/overrides": {
            "get": {
                "tags": ["Overrides"],
                "summary": "List overrides in a date range",
                "parameters": [
                    {"name": "start", "in": "query", "type": "string", "required": true},
                    {"name": "end", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Overrides"],
                "summary": "Create or replace an override",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OverrideRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/overrides/{id}": {
            "get": {
                "tags": ["Overrides"],
                "summary": "Get override",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Overrides"],
                "summary": "Update override",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OverrideRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Overrides"],
                "summary": "Delete override",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/notes/{instanceKey}": {
            "get": {
                "tags": ["Notes"],
                "summary": "Get the note of a class instance",
                "parameters": [
                    {"name": "instanceKey", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Notes"],
                "summary": "Save a class note; blank text deletes it",
                "parameters": [
                    {"name": "instanceKey", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "204": {"description": "Deleted"}
                }
            },
            "delete": {
                "tags": ["Notes"],
                "summary": "Delete a class note",
                "parameters": [
                    {"name": "instanceKey", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/general-notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "List general notes of a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Notes"],
                "summary": "Create general note",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneralNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/general-notes/dates": {
            "get": {
                "tags": ["Notes"],
                "summary": "Dates in a range that hold general notes",
                "parameters": [
                    {"name": "start", "in": "query", "type": "string", "required": true},
                    {"name": "end", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/general-notes/{id}": {
            "get": {
                "tags": ["Notes"],
                "summary": "Get general note",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Notes"],
                "summary": "Update general note",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneralNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Notes"],
                "summary": "Delete general note",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/reminders": {
            "get": {
                "tags": ["Settings"],
                "summary": "Due-date reminders applicable on a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Update settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/backup": {
            "get": {
                "tags": ["Settings"],
                "summary": "Download a JSON snapshot of all data",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Backup file"}
                }
            }
        },
        "/api/v1/data": {
            "delete": {
                "tags": ["Settings"],
                "summary": "Delete every schedule, override, note and reminder record",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        }
    },
    "definitions": {
        "OverrideRequest": {
            "type": "object",
            "required": ["date", "kind"],
            "properties": {
                "date": {"type": "string"},
                "base_schedule_id": {"type": "string"},
                "kind": {"type": "string", "enum": ["edit", "cancel", "add"]},
                "subject_name": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "location": {"type": "string"},
                "professor": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "ClassNoteRequest": {
            "type": "object",
            "properties": {
                "note_text": {"type": "string"}
            }
        },
        "GeneralNoteRequest": {
            "type": "object",
            "required": ["date", "title"],
            "properties": {
                "date": {"type": "string"},
                "title": {"type": "string"},
                "note_text": {"type": "string"},
                "has_due_date": {"type": "boolean"},
                "due_date": {"type": "string"}
            }
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "week_start": {"type": "string", "enum": ["monday", "sunday"]},
                "time_format": {"type": "string", "enum": ["12h", "24h"]},
                "notifications_enabled": {"type": "boolean"},
                "notification_time": {"type": "string", "enum": ["08:00", "12:00", "18:00"]},
                "notification_permission": {"type": "string", "enum": ["default", "granted", "denied"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
