// Package docs registra la especificación OpenAPI servida en /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/vets": {
            "get": {
                "description": "Devuelve todos los veterinarios ordenados por id, con sus especialidades.",
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Listar veterinarios",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/vets.vetResponse"}}
                    },
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Crear veterinario",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vets.vetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/vets.vetResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/vets/name/{lastName}": {
            "get": {
                "description": "Match exacto y case-sensitive. Si no existe responde 200 con cuerpo ` + "`" + `null` + "`" + `.",
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Buscar veterinario por apellido",
                "parameters": [
                    {"type": "string", "description": "Apellido exacto", "name": "lastName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vets.vetResponse"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/vets/{vetID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Obtener veterinario",
                "parameters": [
                    {"type": "integer", "name": "vetID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vets.vetResponse"}},
                    "404": {"description": "vet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/pettypes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Listar tipos de mascota",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.ItemResponse"}}
                    }
                }
            }
        },
        "/specialties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Listar especialidades",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.ItemResponse"}}
                    }
                }
            }
        },
        "/owners": {
            "get": {
                "description": "Ordenados por apellido, con sus mascotas y visitas.",
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Listar owners",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/owners.ownerResponse"}}
                    }
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Acepta mascotas y visitas anidadas; todo se persiste en una transacción.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Crear owner",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/owners.ownerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/owners.ownerResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "409": {"description": "duplicate pet", "schema": {"type": "string"}}
                }
            }
        },
        "/owners/{ownerID}/pets": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Agregar mascota a un owner",
                "parameters": [
                    {"type": "integer", "description": "Owner ID", "name": "ownerID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/owners.petRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/owners.petResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "404": {"description": "owner not found", "schema": {"type": "string"}},
                    "409": {"description": "duplicate pet", "schema": {"type": "string"}}
                }
            }
        },
        "/owners/{ownerID}/pets/{petID}/visits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Listar visitas de una mascota",
                "parameters": [
                    {"type": "integer", "description": "Owner ID", "name": "ownerID", "in": "path", "required": true},
                    {"type": "integer", "description": "Pet ID", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/visits.Response"}}
                    },
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Registrar visita",
                "parameters": [
                    {"type": "integer", "description": "Owner ID", "name": "ownerID", "in": "path", "required": true},
                    {"type": "integer", "description": "Pet ID", "name": "petID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/visits.Request"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/visits.Response"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.ItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "vets.vetRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "specialties": {
                    "type": "array",
                    "items": {"type": "object", "properties": {"id": {"type": "integer"}}}
                }
            }
        },
        "vets.vetResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "nrOfSpecialties": {"type": "integer"},
                "specialties": {"type": "array", "items": {"$ref": "#/definitions/catalog.ItemResponse"}}
            }
        },
        "visits.Request": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2013-01-01"},
                "description": {"type": "string"}
            }
        },
        "visits.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "date": {"type": "string", "example": "2013-01-01"},
                "description": {"type": "string"},
                "petId": {"type": "integer"}
            }
        },
        "owners.petRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "birthDate": {"type": "string", "example": "2010-09-07"},
                "type": {"type": "object", "properties": {"id": {"type": "integer"}}},
                "visits": {"type": "array", "items": {"$ref": "#/definitions/visits.Request"}}
            }
        },
        "owners.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "birthDate": {"type": "string", "example": "2010-09-07"},
                "type": {"$ref": "#/definitions/catalog.ItemResponse"},
                "ownerId": {"type": "integer"},
                "visits": {"type": "array", "items": {"$ref": "#/definitions/visits.Response"}}
            }
        },
        "owners.ownerRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "telephone": {"type": "string", "example": "6085551023"},
                "pets": {"type": "array", "items": {"$ref": "#/definitions/owners.petRequest"}}
            }
        },
        "owners.ownerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "telephone": {"type": "string"},
                "pets": {"type": "array", "items": {"$ref": "#/definitions/owners.petResponse"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "Petclinic API",
	Description:      "Veterinarios, owners, mascotas y visitas de la clínica.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
