package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pets-api/internal/domain/pets"
)

var _ pets.Repository = (*PetsRepo)(nil)

// PetsRepo implementa pets.Repository sobre una colección MongoDB.
//
// Mongo no genera ids enteros, así que el repo mantiene un contador atómico
// inicializado en max(_id)+1 al construirse. Esa lectura inicial no está
// protegida contra otros procesos escribiendo al mismo tiempo: con varias
// instancias apuntando a la misma colección los ids pueden chocar.
type PetsRepo struct {
	col  *mongod.Collection
	next atomic.Int64 // próximo id a entregar
}

func NewPetsRepo(ctx context.Context, db *mongod.Database) (*PetsRepo, error) {
	r := &PetsRepo{col: db.Collection(collectionName)}

	maxID, err := r.maxID(ctx)
	if err != nil {
		return nil, err
	}
	r.next.Store(maxID + 1)
	return r, nil
}

func (r *PetsRepo) maxID(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetProjection(bson.D{{Key: "_id", Value: 1}})

	var doc struct {
		ID int64 `bson:"_id"`
	}
	err := r.col.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongod.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("mongo: find max id: %w", err)
	}
	return doc.ID, nil
}

// advancePast mueve el contador por encima de id si hace falta (ids explícitos).
func (r *PetsRepo) advancePast(id int64) {
	for {
		cur := r.next.Load()
		if id < cur {
			return
		}
		if r.next.CompareAndSwap(cur, id+1) {
			return
		}
	}
}

func (r *PetsRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	doc := toDocument(&p)
	if p.ID == nil {
		doc.ID = r.next.Add(1) - 1
	} else {
		r.advancePast(doc.ID)
	}

	_, err := r.col.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.ID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("mongo: save pet %d: %w", doc.ID, err)
	}
	return *fromDocument(doc), nil
}

func (r *PetsRepo) FindByID(ctx context.Context, id int64) (pets.Pet, bool, error) {
	var doc petDocument
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongod.ErrNoDocuments) {
			return pets.Pet{}, false, nil
		}
		return pets.Pet{}, false, fmt.Errorf("mongo: get pet %d: %w", id, err)
	}
	return *fromDocument(&doc), true, nil
}

func (r *PetsRepo) FindAll(ctx context.Context) ([]pets.Pet, error) {
	cursor, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list pets: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []petDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list pets decode: %w", err)
	}

	out := make([]pets.Pet, 0, len(docs))
	for i := range docs {
		out = append(out, *fromDocument(&docs[i]))
	}
	return out, nil
}

func (r *PetsRepo) DeleteByID(ctx context.Context, id int64) error {
	// DeletedCount == 0 no es error: delete idempotente.
	if _, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("mongo: delete pet %d: %w", id, err)
	}
	return nil
}

func (r *PetsRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo: exists pet %d: %w", id, err)
	}
	return n > 0, nil
}

// CountDistinctSpecies agrupa por species en el servidor y cuenta los grupos.
func (r *PetsRepo) CountDistinctSpecies(ctx context.Context) (int, error) {
	pipeline := mongod.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "species", Value: bson.D{{Key: "$ne", Value: nil}}}}}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$species"}}}},
		{{Key: "$count", Value: "total"}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("mongo: count distinct species: %w", err)
	}
	defer cursor.Close(ctx)

	var res []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &res); err != nil {
		return 0, fmt.Errorf("mongo: count distinct species decode: %w", err)
	}
	// Colección vacía: $count no emite documento.
	if len(res) == 0 {
		return 0, nil
	}
	return int(res[0].Total), nil
}
