// Package roost provides a thin document store layer on top of MongoDB that
// also runs fully in memory for testing.
package roost

// Model defines the shape of a document stored in a collection. Custom types
// must implement the interface by embedding the Base type.
type Model interface {
	// ID returns the primary id.
	ID() ID

	// GetBase returns the models base.
	GetBase() *Base
}

// Base is the base for every roost model. The name of the collection the
// model is stored in is declared using the "roost" struct tag on the
// embedded field.
type Base struct {
	DocID ID `json:"-" bson:"_id,omitempty"`
}

// B is a short-hand to construct a base with the provided id or a generated
// id if none specified.
func B(id ...ID) Base {
	// check list
	if len(id) > 1 {
		panic("roost: B accepts only one id")
	}

	// use provided id if available
	if len(id) > 0 {
		return Base{
			DocID: id[0],
		}
	}

	return Base{
		DocID: New(),
	}
}

// ID implements the Model interface.
func (b *Base) ID() ID {
	return b.DocID
}

// GetBase implements the Model interface.
func (b *Base) GetBase() *Base {
	return b
}
