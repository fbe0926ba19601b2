// Package docs holds the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go
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
        "ClientToken": {
            "type": "apiKey",
            "name": "X-Session-Token",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/sesion": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/auth/email-disponible": {
            "get": {
                "tags": ["auth"],
                "summary": "Email availability",
                "parameters": [
                    {"type": "string", "in": "query", "name": "email", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.emailAvailabilityResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/recuperar": {
            "post": {
                "tags": ["auth"],
                "summary": "Recover password",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.recoverRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/especialidades/{id}/doctores": {
            "get": {
                "tags": ["catalogue"],
                "summary": "Doctors by specialty",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.doctorsResponse"}}
                }
            }
        },
        "/agendar": {
            "post": {
                "tags": ["cart"],
                "summary": "Book an appointment",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.bookResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.bookResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.bookResponse"}}
                }
            }
        },
        "/aviso": {
            "get": {
                "tags": ["notices"],
                "summary": "Current notice",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.noticeResponse"}}
                }
            }
        },
        "/user/carrito": {
            "get": {
                "security": [{"ClientToken": []}],
                "tags": ["cart"],
                "summary": "My appointments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.cartResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"ClientToken": []}],
                "tags": ["cart"],
                "summary": "Cancel an appointment",
                "parameters": [
                    {"type": "integer", "in": "query", "name": "id"},
                    {"type": "string", "in": "query", "name": "servicio"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/user/carrito/confirmar": {
            "post": {
                "security": [{"ClientToken": []}],
                "tags": ["cart"],
                "summary": "Confirm appointments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/user/perfil": {
            "get": {
                "security": [{"ClientToken": []}],
                "tags": ["profile"],
                "summary": "My profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"ClientToken": []}],
                "tags": ["profile"],
                "summary": "Update my profile",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.profileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}
                }
            }
        },
        "/admin/usuarios": {
            "get": {
                "security": [{"ClientToken": []}],
                "tags": ["admin"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.usersResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"ClientToken": []}],
                "tags": ["admin"],
                "summary": "Create user",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/admin/usuarios/{email}": {
            "put": {
                "security": [{"ClientToken": []}],
                "tags": ["admin"],
                "summary": "Update user",
                "parameters": [
                    {"type": "string", "in": "path", "name": "email", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"ClientToken": []}],
                "tags": ["admin"],
                "summary": "Delete user",
                "parameters": [
                    {"type": "string", "in": "path", "name": "email", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "redirect": {"type": "string"}}
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "redirect": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["nombre", "usuario", "email", "fechaNacimiento", "password", "confirmPassword"],
            "properties": {
                "nombre": {"type": "string"},
                "usuario": {"type": "string"},
                "email": {"type": "string"},
                "fechaNacimiento": {"type": "string", "example": "1990-04-21"},
                "password": {"type": "string"},
                "confirmPassword": {"type": "string"}
            }
        },
        "handler.recoverRequest": {
            "type": "object",
            "required": ["email", "password", "confirmPassword"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "confirmPassword": {"type": "string"}
            }
        },
        "domain.Session": {
            "type": "object",
            "properties": {
                "logueado": {"type": "boolean"},
                "correo": {"type": "string"},
                "tipo": {"type": "string", "enum": ["admin", "usuario"]}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "usuario": {"type": "string"},
                "email": {"type": "string"},
                "tipo": {"type": "string", "enum": ["admin", "usuario"]},
                "fechaNacimiento": {"type": "string"}
            }
        },
        "domain.CartItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "servicio": {"type": "string"},
                "usuario": {"type": "string"}
            }
        },
        "domain.Doctor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "descripcion": {"type": "string"},
                "imagen": {"type": "string"},
                "servicio": {"type": "string"}
            }
        },
        "flash.Message": {
            "type": "object",
            "properties": {"tipo": {"type": "string", "enum": ["exito", "error"]}, "texto": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {"sesion": {"$ref": "#/definitions/domain.Session"}, "redirect": {"type": "string"}}
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {"usuario": {"$ref": "#/definitions/domain.User"}, "redirect": {"type": "string"}}
        },
        "handler.emailAvailabilityResponse": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "disponible": {"type": "boolean"}}
        },
        "handler.bookRequest": {
            "type": "object",
            "required": ["servicio"],
            "properties": {"servicio": {"type": "string"}}
        },
        "handler.bookResponse": {
            "type": "object",
            "properties": {
                "resultado": {"type": "string", "enum": ["ok", "not_logged_in", "duplicate"]},
                "mensaje": {"type": "string"},
                "item": {"$ref": "#/definitions/domain.CartItem"},
                "redirect": {"type": "string"}
            }
        },
        "handler.cartResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/domain.CartItem"}}}
        },
        "handler.profileRequest": {
            "type": "object",
            "required": ["nombre"],
            "properties": {"nombre": {"type": "string"}, "usuario": {"type": "string"}, "fechaNacimiento": {"type": "string"}}
        },
        "handler.createUserRequest": {
            "type": "object",
            "required": ["nombre", "email", "password"],
            "properties": {
                "nombre": {"type": "string"},
                "usuario": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "tipo": {"type": "string", "enum": ["admin", "usuario"]},
                "fechaNacimiento": {"type": "string"}
            }
        },
        "handler.updateUserRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "usuario": {"type": "string"},
                "password": {"type": "string"},
                "tipo": {"type": "string", "enum": ["admin", "usuario"]},
                "fechaNacimiento": {"type": "string"}
            }
        },
        "handler.usersResponse": {
            "type": "object",
            "properties": {"usuarios": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}
        },
        "handler.doctorsResponse": {
            "type": "object",
            "properties": {
                "especialidad": {"type": "string"},
                "doctores": {"type": "array", "items": {"$ref": "#/definitions/domain.Doctor"}}
            }
        },
        "handler.noticeResponse": {
            "type": "object",
            "properties": {"aviso": {"$ref": "#/definitions/flash.Message"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Telemedicina Booking API",
	Description:      "Sessions, appointment cart, profiles and user administration for the telemedicine booking app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
