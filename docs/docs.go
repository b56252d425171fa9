// Package docs registra la especificación OpenAPI que sirve el endpoint
// /swagger/. Plantilla mantenida a mano a partir de las anotaciones de los
// handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ejemplares": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["ejemplares"],
                "summary": "Lista los ejemplares de un grupo",
                "parameters": [
                    {"type": "string", "name": "producto_id", "in": "query", "required": true},
                    {"type": "string", "name": "aula_id", "in": "query", "description": "ID del aula, o 'null' para ejemplares sin aula"}
                ],
                "responses": {"200": {"description": "Ejemplares del grupo"}}
            }
        },
        "/ejemplares/resumen": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["ejemplares"],
                "summary": "Resumen agregado por grupo",
                "responses": {"200": {"description": "Resumen por grupo"}}
            }
        },
        "/ejemplares/estado-bulk": {
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ejemplares"],
                "summary": "Cambia el estado de un lote de ejemplares",
                "responses": {"200": {"description": "Resultado de la conciliación"}}
            }
        },
        "/ejemplares/move-bulk": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ejemplares"],
                "summary": "Reubica un lote de ejemplares",
                "responses": {"200": {"description": "Resultado de la conciliación"}}
            }
        },
        "/ejemplares/remove-bulk": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ejemplares"],
                "summary": "Da de baja un lote de ejemplares",
                "responses": {"200": {"description": "Resultado de la conciliación"}}
            }
        },
        "/ejemplares/add": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ejemplares"],
                "summary": "Registra un lote de ejemplares nuevos",
                "responses": {"201": {"description": "Ejemplares insertados"}}
            }
        },
        "/movimientos": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["movimientos"],
                "summary": "Feed paginado de movimientos",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "tipo", "in": "query"},
                    {"type": "string", "name": "desde", "in": "query"},
                    {"type": "string", "name": "hasta", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "Página del feed"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo mantiene los valores exportados de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "API de Inventario - Ejemplares",
	Description:      "Operaciones masivas sobre ejemplares del inventario y su historial de movimientos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
