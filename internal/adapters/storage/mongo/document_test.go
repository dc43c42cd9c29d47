package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"pets-api/internal/domain/pets"
)

func TestDocumentMapping_NilInNilOut(t *testing.T) {
	if toDocument(nil) != nil {
		t.Fatalf("expected nil document for nil pet")
	}
	if fromDocument(nil) != nil {
		t.Fatalf("expected nil pet for nil document")
	}
}

func TestDocumentMapping_OptionalFieldsOmitted(t *testing.T) {
	doc := toDocument(&pets.Pet{Name: "Luna", Species: "Cat"})

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["age"]; ok {
		t.Fatalf("expected age to be omitted, got %v", m["age"])
	}
	if _, ok := m["owner_name"]; ok {
		t.Fatalf("expected owner_name to be omitted, got %v", m["owner_name"])
	}
	if m["species"] != "Cat" {
		t.Fatalf("expected species Cat, got %v", m["species"])
	}
}

func TestDocumentMapping_DetachedCopies(t *testing.T) {
	id := int64(3)
	age := 2
	owner := "Jane Smith"
	p := &pets.Pet{ID: &id, Name: "Bella", Species: "Cat", Age: &age, OwnerName: &owner}

	doc := toDocument(p)
	age = 9
	owner = "changed"

	if *doc.Age != 2 || *doc.OwnerName != "Jane Smith" {
		t.Fatalf("document shares pointers with pet: %#v", doc)
	}

	back := fromDocument(doc)
	*back.Age = 5
	if *doc.Age != 2 {
		t.Fatalf("pet shares pointers with document")
	}
	if *back.ID != 3 {
		t.Fatalf("expected id 3, got %d", *back.ID)
	}
}
