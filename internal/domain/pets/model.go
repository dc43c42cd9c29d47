package pets

// Pet representa una mascota registrada, independiente del backend de persistencia.
type Pet struct {
	// ID es nil hasta el primer Save; después no cambia.
	ID *int64

	Name    string
	Species string // clave de agrupación para CountDistinctSpecies

	Age       *int    // opcional, >= 0
	OwnerName *string // opcional
}

// Clone devuelve una copia sin punteros compartidos con p.
// Los adapters la usan para que el valor devuelto no quede ligado al store.
func (p Pet) Clone() Pet {
	out := Pet{
		Name:    p.Name,
		Species: p.Species,
	}
	if p.ID != nil {
		id := *p.ID
		out.ID = &id
	}
	if p.Age != nil {
		age := *p.Age
		out.Age = &age
	}
	if p.OwnerName != nil {
		owner := *p.OwnerName
		out.OwnerName = &owner
	}
	return out
}

// IDValue devuelve el id o 0 si todavía no fue persistida.
func (p Pet) IDValue() int64 {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}
