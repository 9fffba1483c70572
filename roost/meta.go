package roost

import (
	"fmt"
	"reflect"
	"sync"
)

var baseType = reflect.TypeOf(Base{})

// Meta contains meta information about a model.
type Meta struct {
	// The type.
	Type reflect.Type

	// The collection name.
	Collection string
}

// Make returns a pointer to a new zero value of the meta's model type.
func (m *Meta) Make() Model {
	return reflect.New(m.Type).Interface().(Model)
}

// MakeSlice returns a pointer to a new zero length slice of pointers to the
// meta's model type.
func (m *Meta) MakeSlice() interface{} {
	slice := reflect.MakeSlice(reflect.SliceOf(reflect.PtrTo(m.Type)), 0, 0)
	ptr := reflect.New(slice.Type())
	ptr.Elem().Set(slice)
	return ptr.Interface()
}

var metaMutex sync.Mutex
var metaCache = map[reflect.Type]*Meta{}

// GetMeta will parse the "roost" tag on the embedded roost.Base struct field
// and return the models meta.
func GetMeta(model Model) *Meta {
	// acquire mutex
	metaMutex.Lock()
	defer metaMutex.Unlock()

	// get type
	typ := reflect.TypeOf(model).Elem()

	// check cache
	if meta, ok := metaCache[typ]; ok {
		return meta
	}

	// find base field
	field, ok := typ.FieldByName("Base")
	if !ok || field.Type != baseType {
		panic(fmt.Sprintf(`roost: expected model "%s" to embed "roost.Base"`, typ.String()))
	}

	// get collection name
	collection := field.Tag.Get("roost")
	if collection == "" {
		panic(fmt.Sprintf(`roost: expected model "%s" to declare a collection via the "roost" tag`, typ.String()))
	}

	// prepare meta
	meta := &Meta{
		Type:       typ,
		Collection: collection,
	}

	// cache meta
	metaCache[typ] = meta

	return meta
}

// C is a short-hand function to extract the collection of a model.
func C(model Model) string {
	return GetMeta(model).Collection
}
