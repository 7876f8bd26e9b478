package main

import "petclinic/internal/cli"

// @title Petclinic API
// @version 1.0
// @description Veterinarios, owners, mascotas y visitas de la clínica.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cli.Execute()
}
