package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoDown = errors.New("repo: down")

type testRepo struct {
	byID   map[int64]Pet
	nextID int64
	fail   bool

	deletes int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Pet{}, nextID: 1}
}

func (r *testRepo) Save(ctx context.Context, p Pet) (Pet, error) {
	if r.fail {
		return Pet{}, errRepoDown
	}
	if p.ID == nil {
		id := r.nextID
		r.nextID++
		p.ID = &id
	}
	r.byID[*p.ID] = p.Clone()
	return p.Clone(), nil
}

func (r *testRepo) FindByID(ctx context.Context, id int64) (Pet, bool, error) {
	if r.fail {
		return Pet{}, false, errRepoDown
	}
	p, ok := r.byID[id]
	return p.Clone(), ok, nil
}

func (r *testRepo) FindAll(ctx context.Context) ([]Pet, error) {
	if r.fail {
		return nil, errRepoDown
	}
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out, nil
}

func (r *testRepo) DeleteByID(ctx context.Context, id int64) error {
	r.deletes++
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if r.fail {
		return false, errRepoDown
	}
	_, ok := r.byID[id]
	return ok, nil
}

func (r *testRepo) CountDistinctSpecies(ctx context.Context) (int, error) {
	set := map[string]struct{}{}
	for _, p := range r.byID {
		set[p.Species] = struct{}{}
	}
	return len(set), nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }

// -------------------------
// Tests
// -------------------------

func TestService_Create_AssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	first, err := svc.Create(ctx, PetRequest{Name: "Max", Species: "Dog", Age: intPtr(3), OwnerName: strPtr("John Doe")})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	second, _ := svc.Create(ctx, PetRequest{Name: "Luna", Species: "Cat"})

	if *first.ID != 1 || *second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", *first.ID, *second.ID)
	}
	if *first.Age != 3 || *first.OwnerName != "John Doe" {
		t.Fatalf("unexpected response: %#v", first)
	}
	if second.Age != nil || second.OwnerName != nil {
		t.Fatalf("expected nil optional fields, got %#v", second)
	}
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.GetByID(ctx, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
	if err.Error() != "pet not found with id: 999" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	_, err = svc.Update(ctx, 999, PetRequest{Name: "Ghost", Species: "Dog"})
	if id, ok := NotFoundID(err); !ok || id != 999 {
		t.Fatalf("expected NotFoundError{999} on update, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("update of missing pet must not create a record")
	}

	err = svc.Delete(ctx, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if repo.deletes != 0 {
		t.Fatalf("expected no DeleteByID call for missing pet")
	}
}

func TestService_Update_FullReplace(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	created, _ := svc.Create(ctx, PetRequest{Name: "Max", Species: "Dog", Age: intPtr(3), OwnerName: strPtr("John Doe")})

	updated, err := svc.Update(ctx, *created.ID, PetRequest{Name: "Maximus", Species: "Dog"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if *updated.ID != *created.ID {
		t.Fatalf("expected id %d preserved, got %d", *created.ID, *updated.ID)
	}
	if updated.Name != "Maximus" {
		t.Fatalf("expected name Maximus, got %s", updated.Name)
	}
	if updated.Age != nil || updated.OwnerName != nil {
		t.Fatalf("expected omitted fields cleared, got %#v", updated)
	}

	got, _ := svc.GetByID(ctx, *created.ID)
	if got.OwnerName != nil {
		t.Fatalf("expected stored owner cleared, got %q", *got.OwnerName)
	}
}

func TestService_DeleteAndCount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	_, _ = svc.Create(ctx, PetRequest{Name: "Max", Species: "Dog"})
	_, _ = svc.Create(ctx, PetRequest{Name: "Luna", Species: "Cat"})
	_, _ = svc.Create(ctx, PetRequest{Name: "Rocky", Species: "Dog"})

	n, _ := svc.CountDistinctSpecies(ctx)
	if n != 2 {
		t.Fatalf("expected 2 species, got %d", n)
	}

	if err := svc.Delete(ctx, 2); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	items, _ := svc.ListAll(ctx)
	if len(items) != 2 || *items[0].ID != 1 || *items[1].ID != 3 {
		t.Fatalf("unexpected list after delete: %#v", items)
	}
	n, _ = svc.CountDistinctSpecies(ctx)
	if n != 1 {
		t.Fatalf("expected 1 species, got %d", n)
	}
}

func TestService_ListAll_EmptyIsNotNil(t *testing.T) {
	items, err := NewService(newTestRepo()).ListAll(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestService_StoreErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	repo.fail = true
	svc := NewService(repo)

	if _, err := svc.Create(ctx, PetRequest{Name: "Max", Species: "Dog"}); !errors.Is(err, errRepoDown) {
		t.Fatalf("expected errRepoDown on create, got %v", err)
	}
	if _, err := svc.GetByID(ctx, 1); !errors.Is(err, errRepoDown) {
		t.Fatalf("expected errRepoDown on get, got %v", err)
	}
	if _, err := svc.ListAll(ctx); !errors.Is(err, errRepoDown) {
		t.Fatalf("expected errRepoDown on list, got %v", err)
	}
	if err := svc.Delete(ctx, 1); errors.Is(err, ErrNotFound) || !errors.Is(err, errRepoDown) {
		t.Fatalf("expected errRepoDown on delete, got %v", err)
	}
}
