package redis

import (
	"fmt"
	"strconv"

	"pets-api/internal/domain/pets"
)

// saveArgs arma los ARGV de saveScript. Los campos opcionales viajan con un flag
// de presencia para distinguir "ausente" de cero o cadena vacía.
func saveArgs(id int64, p pets.Pet) []any {
	hasAge, age := "0", ""
	if p.Age != nil {
		hasAge, age = "1", strconv.Itoa(*p.Age)
	}
	hasOwner, owner := "0", ""
	if p.OwnerName != nil {
		hasOwner, owner = "1", *p.OwnerName
	}
	return []any{
		strconv.FormatInt(id, 10),
		p.Name,
		p.Species,
		hasAge, age,
		hasOwner, owner,
	}
}

// fromHash convierte el resultado de HGETALL. Un mapa vacío es un error del caller.
func fromHash(vals map[string]string) (pets.Pet, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("parse id %q: %w", vals["id"], err)
	}

	p := pets.Pet{
		ID:      &id,
		Name:    vals["name"],
		Species: vals["species"],
	}
	if raw, ok := vals["age"]; ok {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return pets.Pet{}, fmt.Errorf("parse age %q: %w", raw, err)
		}
		p.Age = &age
	}
	if owner, ok := vals["owner_name"]; ok {
		p.OwnerName = &owner
	}
	return p, nil
}
