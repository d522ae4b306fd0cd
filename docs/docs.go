// Package docs 由 swag 生成的 API 文档入口，handler 注释变更后重新执行 swag init
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
        "/api/v1/users/{userid}/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "查看用户资料（按查看方裁剪）",
                "parameters": [
                    {"type": "string", "description": "me / @handle / ~anon / pub id", "name": "userid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/users/{userid}/config/privacy": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["隐私"],
                "summary": "读取隐私设置（仅本人）",
                "parameters": [
                    {"type": "string", "description": "me / @handle / pub id", "name": "userid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "patch": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["隐私"],
                "summary": "修改隐私设置（仅本人）",
                "parameters": [
                    {"type": "string", "description": "me / @handle / pub id", "name": "userid", "in": "path", "required": true},
                    {"description": "要修改的字段", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/users/{userid}/rel/followers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["关系链"],
                "summary": "查询粉丝列表（受 followers 隐私设置约束）",
                "parameters": [
                    {"type": "string", "description": "me / @handle / ~anon / pub id", "name": "userid", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "每页数量", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/gyms/{gymid}/training_users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["场馆"],
                "summary": "当前在场馆训练的其他用户，分实名、匿名、隐藏三组",
                "parameters": [
                    {"type": "string", "description": "场馆 id", "name": "gymid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/users/{userid}/notices": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["通知"],
                "summary": "查询通知（仅本人），按通知时间倒序",
                "parameters": [
                    {"type": "string", "description": "me / @handle / pub id", "name": "userid", "in": "path", "required": true},
                    {"type": "boolean", "description": "只看未读", "name": "only_unread", "in": "query"},
                    {"type": "string", "description": "触发者（@handle / pub id）", "name": "igniter", "in": "query"},
                    {"type": "string", "description": "RFC3339", "name": "before", "in": "query"},
                    {"type": "string", "description": "RFC3339", "name": "after", "in": "query"},
                    {"type": "integer", "description": "条数", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GymSocial API",
	Description:      "健身社交：身份寻址、分字段隐私与通知分发",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
