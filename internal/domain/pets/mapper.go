package pets

// PetRequest es el body de POST/PUT. Nunca trae id: el id lo decide el store.
type PetRequest struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Age       *int    `json:"age,omitempty"`
	OwnerName *string `json:"ownerName,omitempty"`
}

// PetResponse siempre incluye id (nil solo si la mascota no fue persistida).
type PetResponse struct {
	ID        *int64  `json:"id"`
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Age       *int    `json:"age"`
	OwnerName *string `json:"ownerName"`
}

// Conversores puros: nil entra, nil sale. Copian campo a campo sin normalizar
// (trim, defaults, etc. son cosa de la validación en el handler).

func FromRequest(req *PetRequest) *Pet {
	if req == nil {
		return nil
	}
	return &Pet{
		Name:      req.Name,
		Species:   req.Species,
		Age:       copyInt(req.Age),
		OwnerName: copyString(req.OwnerName),
	}
}

// ApplyRequest reemplaza todos los campos mutables de p (semántica PUT):
// lo que no viene en req queda en nil.
func ApplyRequest(p *Pet, req *PetRequest) {
	if p == nil || req == nil {
		return
	}
	p.Name = req.Name
	p.Species = req.Species
	p.Age = copyInt(req.Age)
	p.OwnerName = copyString(req.OwnerName)
}

func ToRequest(p *Pet) *PetRequest {
	if p == nil {
		return nil
	}
	return &PetRequest{
		Name:      p.Name,
		Species:   p.Species,
		Age:       copyInt(p.Age),
		OwnerName: copyString(p.OwnerName),
	}
}

func ToResponse(p *Pet) *PetResponse {
	if p == nil {
		return nil
	}
	var id *int64
	if p.ID != nil {
		v := *p.ID
		id = &v
	}
	return &PetResponse{
		ID:        id,
		Name:      p.Name,
		Species:   p.Species,
		Age:       copyInt(p.Age),
		OwnerName: copyString(p.OwnerName),
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
