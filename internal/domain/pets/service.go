package pets

import (
	"context"
)

// Service orquesta el repositorio. No valida input (eso lo hace el handler),
// no bloquea y no reintenta: los errores del store suben tal cual.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req PetRequest) (PetResponse, error) {
	p := FromRequest(&req)

	saved, err := s.repo.Save(ctx, *p)
	if err != nil {
		return PetResponse{}, err
	}
	return *ToResponse(&saved), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (PetResponse, error) {
	p, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PetResponse{}, err
	}
	if !found {
		return PetResponse{}, &NotFoundError{ID: id}
	}
	return *ToResponse(&p), nil
}

// ListAll respeta el orden que devuelve el adapter.
func (s *Service) ListAll(ctx context.Context) ([]PetResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PetResponse, 0, len(items))
	for i := range items {
		out = append(out, *ToResponse(&items[i]))
	}
	return out, nil
}

// Update es reemplazo completo, no PATCH.
// Entre FindByID y Save no hay lock: un delete concurrente en el medio es una carrera aceptada.
func (s *Service) Update(ctx context.Context, id int64, req PetRequest) (PetResponse, error) {
	existing, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PetResponse{}, err
	}
	if !found {
		return PetResponse{}, &NotFoundError{ID: id}
	}

	ApplyRequest(&existing, &req)

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return PetResponse{}, err
	}
	return *ToResponse(&saved), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{ID: id}
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *Service) CountDistinctSpecies(ctx context.Context) (int, error) {
	return s.repo.CountDistinctSpecies(ctx)
}
