package mongo

import "pets-api/internal/domain/pets"

// petDocument es un documento de la colección pets. Los nombres de campo son los
// mismos del dataset que carga `seed` (owner_name en snake_case, _id numérico).
type petDocument struct {
	ID        int64   `bson:"_id"`
	Name      string  `bson:"name"`
	Species   string  `bson:"species"`
	Age       *int    `bson:"age,omitempty"`
	OwnerName *string `bson:"owner_name,omitempty"`
}

// toDocument deja ID en 0 si la mascota no tiene id; el repo lo asigna antes de escribir.
func toDocument(p *pets.Pet) *petDocument {
	if p == nil {
		return nil
	}
	doc := &petDocument{
		Name:    p.Name,
		Species: p.Species,
	}
	if p.ID != nil {
		doc.ID = *p.ID
	}
	if p.Age != nil {
		age := *p.Age
		doc.Age = &age
	}
	if p.OwnerName != nil {
		owner := *p.OwnerName
		doc.OwnerName = &owner
	}
	return doc
}

func fromDocument(doc *petDocument) *pets.Pet {
	if doc == nil {
		return nil
	}
	id := doc.ID
	p := &pets.Pet{
		ID:      &id,
		Name:    doc.Name,
		Species: doc.Species,
	}
	if doc.Age != nil {
		age := *doc.Age
		p.Age = &age
	}
	if doc.OwnerName != nil {
		owner := *doc.OwnerName
		p.OwnerName = &owner
	}
	return p
}
