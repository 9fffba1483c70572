package roost

import (
	"context"
	"errors"

	"github.com/256dpi/lungo"
	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection wraps a collection to automatically push tracing spans for run
// queries.
type Collection struct {
	coll lungo.ICollection
}

// Native will return the underlying native collection.
func (c *Collection) Native() lungo.ICollection {
	return c.coll
}

// CountDocuments wraps the native CountDocuments collection method.
func (c *Collection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	// trace
	ctx, span := xo.Trace(ctx, "roost/Collection.CountDocuments")
	defer span.End()

	// run query
	count, err := c.coll.CountDocuments(ctx, filter, opts...)

	return count, xo.W(err)
}

// DeleteMany wraps the native DeleteMany collection method.
func (c *Collection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	// trace
	ctx, span := xo.Trace(ctx, "roost/Collection.DeleteMany")
	defer span.End()

	// run query
	res, err := c.coll.DeleteMany(ctx, filter, opts...)

	return res, xo.W(err)
}

// FindAll wraps the native Find collection method and decodes all documents to
// the provided slice.
func (c *Collection) FindAll(ctx context.Context, slicePtr interface{}, filter interface{}, opts ...*options.FindOptions) error {
	// trace
	ctx, span := xo.Trace(ctx, "roost/Collection.Find")
	defer span.End()

	// ensure filter
	if filter == nil {
		filter = bson.M{}
	}

	// run query
	csr, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return xo.W(err)
	}

	// decode all documents
	err = csr.All(ctx, slicePtr)
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// FindOne wraps the native FindOne collection method.
func (c *Collection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) lungo.ISingleResult {
	// trace
	ctx, span := xo.Trace(ctx, "roost/Collection.FindOne")
	defer span.End()

	// run query
	return c.coll.FindOne(ctx, filter, opts...)
}

// InsertOne wraps the native InsertOne collection method.
func (c *Collection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	// trace
	ctx, span := xo.Trace(ctx, "roost/Collection.InsertOne")
	defer span.End()

	// run query
	res, err := c.coll.InsertOne(ctx, document, opts...)

	return res, xo.W(err)
}

// UpdateOne wraps the native UpdateOne collection method.
func (c *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	// trace
	ctx, span := xo.Trace(ctx, "roost/Collection.UpdateOne")
	defer span.End()

	// run query
	res, err := c.coll.UpdateOne(ctx, filter, update, opts...)

	return res, xo.W(err)
}

// IsMissing returns whether the provided error describes a missing document.
func IsMissing(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
