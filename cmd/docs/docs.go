// Package docs holds the OpenAPI document served at /swagger. It is maintained
// by hand alongside the handler annotations; keep the two in step when routes change.
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
        "/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List accounts",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Limit number of results", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAccountsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Create a new account",
                "parameters": [
                    {"description": "Account details", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "400": {"description": "Invalid input format or validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Account code already exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/accounts/{accountID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account by ID",
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/journal-entries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "List journal entries",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListJournalEntriesResponse"}},
                    "400": {"description": "Invalid page token", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Create a journal entry",
                "parameters": [
                    {"description": "Journal entry", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateJournalEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.JournalEntryResponse"}},
                    "400": {"description": "Unbalanced entry or invalid input", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Lock contention, retry", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/journal-entries/{entryID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Get a journal entry with its lines",
                "parameters": [
                    {"type": "string", "description": "Journal entry ID", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.JournalEntryResponse"}},
                    "404": {"description": "Journal entry not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/journal-entries/{entryID}/post": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Post a draft journal entry",
                "parameters": [
                    {"type": "string", "description": "Journal entry ID", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.JournalEntryResponse"}},
                    "409": {"description": "Already posted", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/reports/trial-balance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate trial balance report",
                "parameters": [
                    {"type": "string", "description": "Report date (YYYY-MM-DD)", "name": "asOf", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TrialBalanceResponse"}}
                }
            }
        },
        "/invoices": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Register an invoice",
                "parameters": [
                    {"description": "Invoice", "name": "invoice", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateInvoiceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}},
                    "409": {"description": "Invoice number already exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/invoices/{invoiceID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get an invoice with its payment state",
                "parameters": [
                    {"type": "string", "description": "Invoice ID", "name": "invoiceID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}},
                    "404": {"description": "Invoice not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/invoices/{invoiceID}/payments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List the payments of an invoice",
                "parameters": [
                    {"type": "string", "description": "Invoice ID", "name": "invoiceID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PaymentResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Register a payment against an invoice",
                "parameters": [
                    {"type": "string", "description": "Invoice ID", "name": "invoiceID", "in": "path", "required": true},
                    {"description": "Payment", "name": "payment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterPaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.RegisterPaymentResponse"}},
                    "409": {"description": "Invoice already paid or duplicate reference", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/audit-records": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "List audit records",
                "parameters": [
                    {"type": "string", "description": "Resource type", "name": "resourceType", "in": "query"},
                    {"type": "string", "description": "Resource ID", "name": "resourceId", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAuditRecordsResponse"}}
                }
            }
        },
        "/sync/time-entries": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Deliver an offline mutation",
                "parameters": [
                    {"description": "Queued mutation", "name": "envelope", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SyncEnvelope"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SyncAck"}},
                    "409": {"description": "Already clocked in", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/sync/leads": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Deliver an offline mutation",
                "parameters": [
                    {"description": "Queued mutation", "name": "envelope", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SyncEnvelope"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SyncAck"}}
                }
            }
        },
        "/sync/clients": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Deliver an offline mutation",
                "parameters": [
                    {"description": "Queued mutation", "name": "envelope", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SyncEnvelope"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SyncAck"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": ["accountType", "code", "name"],
            "properties": {
                "accountType": {"type": "string", "enum": ["ASSET", "LIABILITY", "EQUITY", "REVENUE", "EXPENSE"]},
                "code": {"type": "string", "maxLength": 20},
                "name": {"type": "string"}
            }
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {"type": "string"},
                "accountType": {"type": "string"},
                "balance": {"type": "number"},
                "code": {"type": "string"},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "isActive": {"type": "boolean"},
                "name": {"type": "string"}
            }
        },
        "dto.ListAccountsResponse": {
            "type": "object",
            "properties": {
                "accounts": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountResponse"}}
            }
        },
        "dto.CreateJournalLineRequest": {
            "type": "object",
            "required": ["accountId"],
            "properties": {
                "accountId": {"type": "string"},
                "credit": {"type": "number"},
                "debit": {"type": "number"},
                "description": {"type": "string"}
            }
        },
        "dto.CreateJournalEntryRequest": {
            "type": "object",
            "required": ["date", "description", "lines"],
            "properties": {
                "date": {"type": "string"},
                "description": {"type": "string"},
                "lines": {"type": "array", "minItems": 2, "items": {"$ref": "#/definitions/dto.CreateJournalLineRequest"}},
                "post": {"type": "boolean"},
                "reference": {"type": "string"}
            }
        },
        "dto.JournalLineResponse": {
            "type": "object",
            "properties": {
                "accountId": {"type": "string"},
                "credit": {"type": "number"},
                "debit": {"type": "number"},
                "description": {"type": "string"},
                "lineNumber": {"type": "integer"}
            }
        },
        "dto.JournalEntryResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "entryID": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.JournalLineResponse"}},
                "postedAt": {"type": "string"},
                "reference": {"type": "string"},
                "status": {"type": "string"},
                "total": {"type": "number"}
            }
        },
        "dto.ListJournalEntriesResponse": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/dto.JournalEntryResponse"}},
                "nextToken": {"type": "string"}
            }
        },
        "dto.TrialBalanceRowResponse": {
            "type": "object",
            "properties": {
                "accountCode": {"type": "string"},
                "accountID": {"type": "string"},
                "accountName": {"type": "string"},
                "accountType": {"type": "string"},
                "balance": {"type": "number"},
                "credit": {"type": "number"},
                "debit": {"type": "number"}
            }
        },
        "dto.TrialBalanceResponse": {
            "type": "object",
            "properties": {
                "asOf": {"type": "string"},
                "balanced": {"type": "boolean"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/dto.TrialBalanceRowResponse"}},
                "totalCredit": {"type": "number"},
                "totalDebit": {"type": "number"}
            }
        },
        "dto.CreateInvoiceRequest": {
            "type": "object",
            "required": ["customerName", "issueDate", "number"],
            "properties": {
                "customerName": {"type": "string"},
                "issueDate": {"type": "string"},
                "number": {"type": "string"},
                "total": {"type": "number"}
            }
        },
        "dto.InvoiceResponse": {
            "type": "object",
            "properties": {
                "customerName": {"type": "string"},
                "invoiceID": {"type": "string"},
                "issueDate": {"type": "string"},
                "number": {"type": "string"},
                "outstanding": {"type": "number"},
                "paidAmount": {"type": "number"},
                "paymentStatus": {"type": "string", "enum": ["pending", "partial", "paid"]},
                "total": {"type": "number"}
            }
        },
        "dto.RegisterPaymentRequest": {
            "type": "object",
            "required": ["paymentDate", "paymentMethod"],
            "properties": {
                "amount": {"type": "number"},
                "notes": {"type": "string"},
                "paymentDate": {"type": "string"},
                "paymentMethod": {"type": "string", "enum": ["transfer", "cash", "card", "direct_debit", "check", "other"]},
                "reference": {"type": "string", "maxLength": 128}
            }
        },
        "dto.PaymentResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "createdAt": {"type": "string"},
                "invoiceID": {"type": "string"},
                "notes": {"type": "string"},
                "paymentDate": {"type": "string"},
                "paymentID": {"type": "string"},
                "paymentMethod": {"type": "string"},
                "reference": {"type": "string"}
            }
        },
        "dto.RegisterPaymentResponse": {
            "type": "object",
            "properties": {
                "invoice": {"$ref": "#/definitions/dto.InvoiceResponse"},
                "payment": {"$ref": "#/definitions/dto.PaymentResponse"}
            }
        },
        "dto.AuditRecordResponse": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "eventType": {"type": "string"},
                "ipAddress": {"type": "string"},
                "metadata": {"type": "object", "additionalProperties": true},
                "recordID": {"type": "string"},
                "resourceID": {"type": "string"},
                "resourceType": {"type": "string"},
                "timestamp": {"type": "string"},
                "userAgent": {"type": "string"},
                "userID": {"type": "string"}
            }
        },
        "dto.ListAuditRecordsResponse": {
            "type": "object",
            "properties": {
                "records": {"type": "array", "items": {"$ref": "#/definitions/dto.AuditRecordResponse"}}
            }
        },
        "dto.SyncEnvelope": {
            "type": "object",
            "required": ["action", "offline_id", "offline_timestamp"],
            "properties": {
                "action": {"type": "string"},
                "data": {"type": "object"},
                "offline_id": {"type": "string"},
                "offline_timestamp": {"type": "string"}
            }
        },
        "dto.SyncAck": {
            "type": "object",
            "properties": {
                "duplicate": {"type": "boolean"},
                "offline_id": {"type": "string"},
                "resource_id": {"type": "string"}
            }
        }
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
	Title:            "Solar Backoffice API",
	Description:      "Ledger, invoicing, audit trail and offline sync inbox for the solar installation backoffice.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
