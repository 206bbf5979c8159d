// Package docs registers the OpenAPI document served under /swagger/.
// It mirrors the godoc annotations on the delivery handlers and is kept in
// the layout swag init produces, so regenerating it replaces this file.
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
        "/health": {"get": {"tags": ["Health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}},
        "/api/supplies": {
            "get": {"tags": ["Inventory"], "summary": "List supplies", "parameters": [{"type": "integer", "name": "limit", "in": "query"}, {"type": "integer", "name": "offset", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Inventory"], "summary": "Create supply", "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSupply"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
        },
        "/api/supplies/low-stock": {"get": {"tags": ["Inventory"], "summary": "List low stock supplies", "responses": {"200": {"description": "OK"}}}},
        "/api/supplies/{id}": {"get": {"tags": ["Inventory"], "summary": "Get supply", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/api/supplies/{id}/stock": {"put": {"tags": ["Inventory"], "summary": "Restock supply", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Restock"}}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/api/inventory/history": {"get": {"tags": ["Inventory"], "summary": "Inventory history", "parameters": [{"type": "integer", "name": "supply_id", "in": "query"}, {"type": "integer", "name": "sale_id", "in": "query"}, {"type": "integer", "name": "days", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/categories": {
            "get": {"tags": ["Catalog"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Catalog"], "summary": "Create category", "responses": {"201": {"description": "Created"}}}
        },
        "/api/products": {
            "get": {"tags": ["Catalog"], "summary": "List products", "parameters": [{"type": "integer", "name": "category_id", "in": "query"}, {"type": "string", "name": "search", "in": "query"}, {"type": "boolean", "name": "include_inactive", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Catalog"], "summary": "Create product", "responses": {"201": {"description": "Created"}}}
        },
        "/api/products/{id}": {
            "get": {"tags": ["Catalog"], "summary": "Get product", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["Catalog"], "summary": "Update product", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Catalog"], "summary": "Deactivate product", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/products/{id}/recipe": {
            "get": {"tags": ["Catalog"], "summary": "Get product recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Catalog"], "summary": "Replace product recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/products/{id}/recipe/stock": {"get": {"tags": ["Inventory"], "summary": "Recipe with current stock", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/products/{id}/availability": {"get": {"tags": ["Inventory"], "summary": "Check product availability", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "quantity", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/discounts": {
            "get": {"tags": ["Discounts"], "summary": "List active discounts", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Discounts"], "summary": "Create discount", "responses": {"201": {"description": "Created"}}}
        },
        "/api/discounts/{id}": {
            "patch": {"tags": ["Discounts"], "summary": "Update discount", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Discounts"], "summary": "Deactivate discount", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/sales": {
            "get": {"tags": ["Sales"], "summary": "List sales", "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}, {"type": "integer", "name": "product_id", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Sales"], "summary": "Register sale", "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterSale"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}, "404": {"description": "Unknown product, supply or discount"}, "409": {"description": "Concurrent update, retry"}, "422": {"description": "Insufficient stock"}}}
        },
        "/api/sales/{id}": {"get": {"tags": ["Sales"], "summary": "Get sale", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/api/reports/sales-summary": {"get": {"tags": ["Reports"], "summary": "Sales summary", "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/reports/sales-by-product": {"get": {"tags": ["Reports"], "summary": "Sales by product", "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/reports/ledger": {"get": {"tags": ["Reports"], "summary": "Ledger reconciliation", "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "CreateSupply": {"type": "object", "required": ["name", "unit"], "properties": {"name": {"type": "string"}, "unit": {"type": "string"}, "stock": {"type": "number"}, "min_stock": {"type": "number"}, "category_id": {"type": "integer"}}},
        "Restock": {"type": "object", "properties": {"new_stock": {"type": "number"}, "notes": {"type": "string"}}},
        "RegisterSale": {"type": "object", "required": ["product_id", "quantity"], "properties": {
            "product_id": {"type": "integer"},
            "quantity": {"type": "integer"},
            "discount_id": {"type": "integer"},
            "custom_discount": {"type": "object", "properties": {"type": {"type": "string", "enum": ["percentage", "fixed"]}, "value": {"type": "number"}}},
            "supplies_used": {"type": "array", "items": {"type": "object", "properties": {"supply_id": {"type": "integer"}, "quantity": {"type": "number"}}}}
        }}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "POS Service API",
	Description:      "Point-of-sale engine: supplies, catalog, discounts, sales and reports",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
