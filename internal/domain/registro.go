package domain

// Pais represents a country in the auxiliary registry
type Pais struct {
	ID     int64  `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
}

// Persona represents a person in the auxiliary registry. PaisID is nullable:
// a persona does not have to belong to a registered country.
type Persona struct {
	ID       int64  `json:"id" db:"id"`
	Nombre   string `json:"nombre" db:"nombre"`
	Apellido string `json:"apellido" db:"apellido"`
	Edad     int    `json:"edad" db:"edad"`
	PaisID   *int64 `json:"pais_id" db:"pais_id"`
}
