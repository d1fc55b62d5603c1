// Package docs registers the gateway's OpenAPI document with swag so that
// echo-swagger can serve it at /swagger/index.html.
//
// Regenerate with `go generate ./cmd/portal-gateway` after changing handler
// annotations; docs_test.go fails while the two disagree.
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
        "/api/auth/candidate/login": {
            "post": {
                "tags": ["proxy"],
                "summary": "Backend proxy: candidate login",
                "parameters": [
                    {"type": "string", "description": "Tenant subdomain", "name": "x-tenant-subdomain", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "Backend answer, relayed"},
                    "413": {"description": "Request body too large", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Transport failure or oversized backend answer", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/jobs": {
            "get": {
                "tags": ["proxy"],
                "summary": "Backend proxy: job listing",
                "responses": {
                    "200": {"description": "Backend answer, relayed"},
                    "500": {"description": "Transport failure", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/tenant/public-info": {
            "get": {
                "tags": ["proxy"],
                "summary": "Backend proxy: tenant public info",
                "parameters": [
                    {"type": "string", "description": "Tenant subdomain", "name": "x-tenant-subdomain", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "Backend answer, relayed"},
                    "400": {"description": "Missing tenant", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/tenant/users": {
            "get": {
                "tags": ["proxy"],
                "summary": "Backend proxy: tenant users",
                "parameters": [
                    {"type": "string", "description": "Tenant subdomain", "name": "x-tenant-subdomain", "in": "header", "required": true},
                    {"type": "string", "description": "Bearer token, defaults to the session token", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "Backend answer, relayed"},
                    "400": {"description": "Missing tenant", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/session": {
            "get": {
                "tags": ["session"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}}}
            }
        },
        "/session/login": {
            "post": {
                "tags": ["session"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "Tenant subdomain", "name": "x-tenant-subdomain", "in": "header"},
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/session/logout": {
            "post": {
                "tags": ["session"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications": {
            "get": {
                "tags": ["notifications"],
                "summary": "List notifications",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "post": {
                "tags": ["notifications"],
                "summary": "Mark a notification read",
                "parameters": [{"type": "string", "description": "Notification id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/notifications/read-all": {
            "post": {
                "tags": ["notifications"],
                "summary": "Mark all notifications read",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications/toasts": {
            "get": {
                "tags": ["notifications"],
                "summary": "Active toasts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications/stream": {
            "get": {
                "tags": ["notifications"],
                "summary": "Toast stream (websocket)",
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/superadmin": {
            "get": {
                "tags": ["shell"],
                "summary": "Layout shell",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shellResponse"}},
                    "202": {"description": "Session still loading"},
                    "302": {"description": "Redirect to login or the role's home"}
                }
            }
        },
        "/admin": {
            "get": {
                "tags": ["shell"],
                "summary": "Layout shell",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shellResponse"}},
                    "202": {"description": "Session still loading"},
                    "302": {"description": "Redirect to login or the role's home"}
                }
            }
        },
        "/candidate": {
            "get": {
                "tags": ["shell"],
                "summary": "Layout shell",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shellResponse"}},
                    "202": {"description": "Session still loading"},
                    "302": {"description": "Redirect to login or the role's home"}
                }
            }
        },
        "/employee": {
            "get": {
                "tags": ["shell"],
                "summary": "Layout shell",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shellResponse"}},
                    "202": {"description": "Session still loading"},
                    "302": {"description": "Redirect to login or the role's home"}
                }
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "loginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "user": {"type": "object"},
                "home": {"type": "string"}
            }
        },
        "shellResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "section": {"type": "string"},
                "home": {"type": "string"},
                "header": {"type": "object"},
                "sidebar": {"type": "array", "items": {"type": "object"}},
                "footer": {"type": "object"}
            }
        },
        "sessionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "user": {"type": "object"},
                "isAuthenticated": {"type": "boolean"},
                "isLoading": {"type": "boolean"},
                "home": {"type": "string"}
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
	Title:            "Portal Gateway API",
	Description:      "Backend-for-frontend of the recruitment portal: sessions, role-gated shells, notifications and backend proxy routes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
