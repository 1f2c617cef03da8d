package domain

import "time"

// Auto represents a vehicle in the inventory. The numero_chasis (VIN) is
// generated by the service layer and never changes after creation.
type Auto struct {
	ID           int64  `json:"id" db:"id"`
	Marca        string `json:"marca" db:"marca"`
	Modelo       string `json:"modelo" db:"modelo"`
	Anio         int    `json:"anio" db:"anio"`
	NumeroChasis string `json:"numero_chasis" db:"numero_chasis"`
}

// Venta represents a sales record for a vehicle
type Venta struct {
	ID              int64     `json:"id" db:"id"`
	NombreComprador string    `json:"nombre_comprador" db:"nombre_comprador"`
	Precio          float64   `json:"precio" db:"precio"`
	FechaVenta      time.Time `json:"fecha_venta" db:"fecha_venta"`
	AutoID          int64     `json:"auto_id" db:"auto_id"`
}
