// Package docs holds the Swagger document served at /swagger. Regenerate with `swag init -g cmd/recon_backend/main.go -o cmd/docs`.
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
        "/companies/{company_id}/journal-entries/{entry_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal-entries"],
                "summary": "Get a journal entry",
                "parameters": [
                    {"type": "string", "description": "Company ID", "name": "company_id", "in": "path", "required": true},
                    {"type": "string", "description": "Journal entry ID", "name": "entry_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.JournalEntryResponse"}},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Entry not found"},
                    "500": {"description": "Failed to retrieve entry"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["journal-entries"],
                "summary": "Edit a posted journal entry",
                "parameters": [
                    {"type": "string", "description": "Company ID", "name": "company_id", "in": "path", "required": true},
                    {"type": "string", "description": "Journal entry ID", "name": "entry_id", "in": "path", "required": true},
                    {"description": "New header and lines", "name": "edit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SaveEditRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaveEditResponse"}},
                    "400": {"description": "Validation error"},
                    "403": {"description": "Not an owner or protected entry"},
                    "404": {"description": "Entry not found"},
                    "409": {"description": "Version conflict"},
                    "500": {"description": "Failed to save edit"}
                }
            }
        },
        "/companies/{company_id}/journal-entries/{entry_id}/generate-lines": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["journal-entries"],
                "summary": "Generate journal lines from the source document",
                "parameters": [
                    {"type": "string", "description": "Company ID", "name": "company_id", "in": "path", "required": true},
                    {"type": "string", "description": "Journal entry ID", "name": "entry_id", "in": "path", "required": true},
                    {"description": "Expected reference of the entry", "name": "reference", "in": "body", "schema": {"$ref": "#/definitions/dto.GenerateLinesRequest"}}
                ],
                "responses": {
                    "200": {"description": "Lines already existed", "schema": {"$ref": "#/definitions/dto.GenerateLinesResponse"}},
                    "201": {"description": "Lines created", "schema": {"$ref": "#/definitions/dto.GenerateLinesResponse"}},
                    "400": {"description": "Reference mismatch or unbalanced result"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Entry, document or account not found"},
                    "422": {"description": "Entry has no supported reference"},
                    "500": {"description": "Failed to generate lines"}
                }
            }
        },
        "/companies/{company_id}/journal-entries/{entry_id}/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal-entries"],
                "summary": "List the audit trail of an entry",
                "parameters": [
                    {"type": "string", "description": "Company ID", "name": "company_id", "in": "path", "required": true},
                    {"type": "string", "description": "Journal entry ID", "name": "entry_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAuditRecordsResponse"}},
                    "404": {"description": "Entry not found"},
                    "500": {"description": "Failed to list audit records"}
                }
            }
        },
        "/companies/{company_id}/journal-entries/{entry_id}/audit/verify": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal-entries"],
                "summary": "Verify the audit hash chain of an entry",
                "parameters": [
                    {"type": "string", "description": "Company ID", "name": "company_id", "in": "path", "required": true},
                    {"type": "string", "description": "Journal entry ID", "name": "entry_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuditVerification"}},
                    "404": {"description": "Entry not found"},
                    "500": {"description": "Failed to verify audit trail"}
                }
            }
        }
    },
    "definitions": {
        "domain.AuditVerification": {"type": "object"},
        "dto.GenerateLinesRequest": {"type": "object"},
        "dto.GenerateLinesResponse": {"type": "object"},
        "dto.JournalEntryResponse": {"type": "object"},
        "dto.ListAuditRecordsResponse": {"type": "object"},
        "dto.SaveEditRequest": {"type": "object"},
        "dto.SaveEditResponse": {"type": "object"}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ledger Reconciler API",
	Description:      "Generates, edits and audits journal entries derived from invoices, bills and payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
