// Package docs Place Discovery API.
//
// Поиск ближайших мест по радиусу, обогащение их страницами контента
// и подсказки для строки поиска.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Состояние сервиса и размеры индексов",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/places/nearby": {
            "get": {
                "tags": ["Places"],
                "summary": "Места в радиусе от seed",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Глобальный идентификатор seed", "name": "id", "in": "query", "required": true},
                    {"type": "number", "default": 5, "description": "Радиус в милях", "name": "radius", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/places/nearby/ids": {
            "get": {
                "tags": ["Places"],
                "summary": "Канонические идентификаторы мест в радиусе",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Глобальный идентификатор seed", "name": "id", "in": "query", "required": true},
                    {"type": "number", "default": 5, "description": "Радиус в милях", "name": "radius", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/places/nearby/pages": {
            "get": {
                "tags": ["Enrichment"],
                "summary": "Страницы контента для ближайших мест",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Глобальный идентификатор seed", "name": "id", "in": "query", "required": true},
                    {"type": "number", "default": 5, "description": "Радиус в милях", "name": "radius", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Максимум страниц", "name": "max", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/v1/nearby/warm": {
            "post": {
                "tags": ["Enrichment"],
                "summary": "Фоновый прогрев кеша страниц",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "202": {"description": "Accepted"},
                    "400": {"description": "Bad Request"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/v1/suggest": {
            "get": {
                "tags": ["Search"],
                "summary": "Подсказки для строки поиска",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Строка запроса", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Place Discovery API",
	Description:      "Поиск ближайших мест, страницы контента для них и подсказки для строки поиска.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
