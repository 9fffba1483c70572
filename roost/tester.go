package roost

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// A Tester provides facilities to test code using a store.
type Tester struct {
	// The store to use for cleaning the database.
	Store *Store

	// The registered models.
	Models []Model
}

// NewTester returns a new tester. If no store is provided an in-memory store
// is created.
func NewTester(store *Store, models ...Model) *Tester {
	// ensure store
	if store == nil {
		store = MustOpen(nil, "test")
	}

	return &Tester{
		Store:  store,
		Models: models,
	}
}

// Clean will remove the collections of models that have been registered.
func (t *Tester) Clean() {
	for _, model := range t.Models {
		// remove all is faster than dropping the collection
		_, err := t.Store.C(model).DeleteMany(context.Background(), bson.M{})
		if err != nil {
			panic(err)
		}
	}
}

// Save will save the specified model.
func (t *Tester) Save(model Model) Model {
	// ensure id
	if model.ID().IsZero() {
		model.GetBase().DocID = New()
	}

	// insert to collection
	_, err := t.Store.C(model).InsertOne(context.Background(), model)
	if err != nil {
		panic(err)
	}

	return model
}

// FindAll will return all saved models ordered by id.
func (t *Tester) FindAll(model Model) interface{} {
	// find all documents
	list := GetMeta(model).MakeSlice()
	err := t.Store.C(model).FindAll(context.Background(), list, bson.M{}, options.Find().SetSort(Sort("_id")))
	if err != nil {
		panic(err)
	}

	return list
}

// Count will return the number of saved models.
func (t *Tester) Count(model Model) int {
	// count documents
	count, err := t.Store.C(model).CountDocuments(context.Background(), bson.M{})
	if err != nil {
		panic(err)
	}

	return int(count)
}
