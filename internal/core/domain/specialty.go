package domain

// Doctor is a practitioner listed under a specialty.
type Doctor struct {
	ID          int    `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Image       string `json:"imagen"`
	Service     string `json:"servicio"`
}

// Specialty groups doctors, e.g. "medicina-general".
type Specialty struct {
	ID          string   `json:"id"`
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion"`
	Doctors     []Doctor `json:"doctores"`
}
