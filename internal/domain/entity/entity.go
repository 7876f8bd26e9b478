package entity

import "strings"

// BaseEntity es la identidad común de todo registro persistido.
// ID == 0 significa que todavía no fue guardado.
type BaseEntity struct {
	ID int64
}

func (e BaseEntity) IsNew() bool {
	return e.ID == 0
}

// NamedEntity agrega un nombre a la identidad (mascotas, tipos, especialidades).
type NamedEntity struct {
	BaseEntity
	Name string
}

// Person agrega nombre y apellido (dueños, veterinarios).
type Person struct {
	BaseEntity
	FirstName string
	LastName  string
}

// FullName devuelve "Nombre Apellido" sin espacios sobrantes.
func (p Person) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
