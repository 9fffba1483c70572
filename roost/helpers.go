package roost

import (
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Sort is a helper to construct a sort document from a list of field names.
// Prefixing a field with a minus will request a descending order.
func Sort(fields ...string) bson.D {
	// prepare document
	doc := make(bson.D, 0, len(fields))

	// add fields
	for _, field := range fields {
		// check direction
		direction := 1
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			direction = -1
		}

		// add field
		doc = append(doc, bson.E{Key: field, Value: direction})
	}

	return doc
}

// Slice takes a slice of the form *[]*Post and returns a new slice that
// contains all models.
func Slice(ptr interface{}) []Model {
	// get slice
	slice := reflect.ValueOf(ptr).Elem()

	// collect models
	models := make([]Model, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		models[i] = slice.Index(i).Interface().(Model)
	}

	return models
}
