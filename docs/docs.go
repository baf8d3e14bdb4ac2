// Package docs registers the Swagger document of the mock storefront API.
// Regenerate with: swag init -g cmd/mockserver/main.go
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
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.DetailResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ValidationResponse"}}
                }
            }
        },
        "/cart/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Get the user's cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Cart"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.DetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.DetailResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the existing cart when the user already has one. Also served at /jsonar.",
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Create the user's cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Cart"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.DetailResponse"}}
                }
            }
        },
        "/cart/items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "An empty list is returned when the user has no cart.",
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "List cart items",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.CartItem"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.DetailResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Quantities accumulate. Also served at POST /items.",
                "consumes": ["application/json"],
                "tags": ["cart"],
                "summary": "Add a product to the cart",
                "parameters": [
                    {"description": "Item", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CartItem"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.DetailResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ValidationResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Also served at PUT /items.",
                "consumes": ["application/json"],
                "tags": ["cart"],
                "summary": "Set the quantity of a cart line",
                "parameters": [
                    {"description": "Item", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.UpdateItemRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.DetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.DetailResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ValidationResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["cart"],
                "summary": "Remove a cart line",
                "parameters": [
                    {"description": "Item", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.RemoveItemRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.DetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.DetailResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ValidationResponse"}}
                }
            }
        },
        "/categories/": {
            "get": {
                "description": "Also served at /jsoner.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List all categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Category"}}}
                }
            }
        },
        "/categories/user/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List the categories owned by an admin",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Category"}}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List all products",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a product",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.DetailResponse"}}
                }
            }
        },
        "/products/category/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List the products of a category",
                "parameters": [{"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}}
                }
            }
        },
        "/products/user/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List the products owned by an admin",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}}
                }
            }
        }
    },
    "definitions": {
        "errors.DetailResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        },
        "errors.ValidationDetail": {
            "type": "object",
            "properties": {
                "loc": {"type": "array", "items": {}},
                "msg": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "errors.ValidationResponse": {
            "type": "object",
            "properties": {"detail": {"type": "array", "items": {"$ref": "#/definitions/errors.ValidationDetail"}}}
        },
        "model.Cart": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/model.CartItem"}}
            }
        },
        "model.CartItem": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"}
            }
        },
        "model.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "model.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "unit_price": {"type": "number"},
                "price": {"type": "number"},
                "image_path": {"type": "string"},
                "stock": {"type": "integer"},
                "category_id": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "model.RemoveItemRequest": {
            "type": "object",
            "required": ["product_id"],
            "properties": {"product_id": {"type": "string"}}
        },
        "model.UpdateItemRequest": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "image_path": {"type": "string"}
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
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Storefront Mock API",
	Description:      "Local stand-in for the storefront API: login, catalog and cart endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
