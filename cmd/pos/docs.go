package main

// @title POS Service API
// @version 1.0
// @description Point-of-sale engine with stock-checked sales, recipes, discounts and reports
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/pos-engine
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tair/pos-engine/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @tag.name Inventory
// @tag.description Supplies, restocking and the inventory ledger

// @tag.name Catalog
// @tag.description Categories, products and recipes

// @tag.name Discounts
// @tag.description Stored discount rules

// @tag.name Sales
// @tag.description Sale registration and lookup

// @tag.name Reports
// @tag.description Read-only sales and ledger reports

// @tag.name Health
// @tag.description Health check endpoints
