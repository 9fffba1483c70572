package roost

import (
	"net/url"
	"strings"

	"github.com/256dpi/lungo"
	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MustConnect will call Connect and panic on errors.
func MustConnect(uri string) *Store {
	// connect store
	store, err := Connect(uri)
	if err != nil {
		panic(err)
	}

	return store
}

// Connect will connect to the database specified by the URI and return a new
// store. The path of the URI is used as the default database.
func Connect(uri string) (*Store, error) {
	// parse url
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, xo.W(err)
	}

	// get default db
	defaultDB := strings.Trim(parsedURL.Path, "/")
	if defaultDB == "" {
		return nil, xo.F("missing default database in URI")
	}

	// create client
	client, err := lungo.Connect(nil, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, xo.W(err)
	}

	// ping server
	err = client.Ping(nil, nil)
	if err != nil {
		return nil, xo.W(err)
	}

	return NewStore(client, nil, defaultDB), nil
}

// MustOpen will call Open and panic on errors.
func MustOpen(store lungo.Store, defaultDB string) *Store {
	// open store
	s, err := Open(store, defaultDB)
	if err != nil {
		panic(err)
	}

	return s
}

// Open will open the database backed by the provided lungo store and return a
// new store. If no lungo store is provided an in-memory store is used.
func Open(store lungo.Store, defaultDB string) (*Store, error) {
	// ensure store
	if store == nil {
		store = lungo.NewMemoryStore()
	}

	// open database
	client, engine, err := lungo.Open(nil, lungo.Options{
		Store: store,
	})
	if err != nil {
		return nil, xo.W(err)
	}

	return NewStore(client, engine, defaultDB), nil
}

// NewStore creates a store that uses the provided client and default database.
func NewStore(client lungo.IClient, engine *lungo.Engine, defaultDB string) *Store {
	return &Store{
		client:    client,
		engine:    engine,
		defaultDB: defaultDB,
	}
}

// A Store manages the usage of a database client.
type Store struct {
	client    lungo.IClient
	engine    *lungo.Engine
	defaultDB string
}

// Client returns the client used by the store.
func (s *Store) Client() lungo.IClient {
	return s.client
}

// DB returns the default database used by the store.
func (s *Store) DB() lungo.IDatabase {
	return s.client.Database(s.defaultDB)
}

// C will return the collection associated to the specified model.
func (s *Store) C(model Model) *Collection {
	return &Collection{
		coll: s.DB().Collection(C(model)),
	}
}

// Lungo returns whether the store is backed by a lungo engine.
func (s *Store) Lungo() bool {
	return s.engine != nil
}

// Close will close the store and its associated client.
func (s *Store) Close() error {
	// close engine
	if s.engine != nil {
		s.engine.Close()
		return nil
	}

	// disconnect client
	err := s.client.Disconnect(nil)
	if err != nil {
		return xo.W(err)
	}

	return nil
}
