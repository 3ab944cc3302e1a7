package docs

import "github.com/swaggo/swag"

// @title           Wedding Planner API
// @version         1.0
// @description     API for managing weddings, guests, seating and checklists

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Auth
// @tag.description Planner registration and login

// @tag.name Weddings
// @tag.description Wedding management operations

// @tag.name Tables
// @tag.description Reception table operations

// @tag.name Families
// @tag.description Family and guest operations

// @tag.name Checklist
// @tag.description Checklist sections, tasks and spreadsheet import/export

// @tag.name Seating
// @tag.description Random and manual seat assignment

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
