package flock

import (
	"context"
	"sync"

	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/256dpi/flock/roost"
)

// State describes the lifecycle of a subscription.
type State string

// The supported subscription states. Opening failures transition directly
// back to Closed, there is no automatic retry.
const (
	Closed  State = "closed"
	Opening State = "opening"
	Live    State = "live"
)

// Feed is a live subscription to the ordered list of all posts. Every change
// to the post collection triggers the delivery of a new full snapshot,
// ordered by creation time descending. Snapshots replace each other, there
// are no incremental updates.
type Feed struct {
	store    *roost.Store
	reporter func(error)

	mutex     sync.Mutex
	state     State
	stream    *roost.Stream
	snapshots chan []*Post
}

// NewFeed creates a new closed feed. Deferred subscription errors are
// forwarded to the provided reporter.
func NewFeed(store *roost.Store, reporter func(error)) *Feed {
	return &Feed{
		store:     store,
		reporter:  reporter,
		state:     Closed,
		snapshots: make(chan []*Post, 1),
	}
}

// State returns the current subscription state.
func (f *Feed) State() State {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.state
}

// Snapshots returns the channel on which snapshots are delivered. Only the
// latest snapshot is retained if the consumer falls behind.
func (f *Feed) Snapshots() <-chan []*Post {
	return f.snapshots
}

// Open will subscribe to changes and deliver the initial snapshot. The
// initial fetch is performed after the change stream is established, writes
// issued once Open returned are therefore always reflected in a following
// snapshot. If the subscription or the initial fetch fails the feed stays
// closed and the error is returned.
func (f *Feed) Open(ctx context.Context) error {
	// acquire mutex
	f.mutex.Lock()
	defer f.mutex.Unlock()

	// check state
	if f.state != Closed {
		return xo.F("feed already open")
	}

	// set state
	f.state = Opening

	// subscribe to changes
	opened := make(chan error, 1)
	stream := roost.OpenStream(f.store, &Post{}, nil, f.makeReceiver(ctx, opened))

	// await establishment and the initial snapshot
	err := <-opened
	if err != nil {
		stream.Close()
		f.state = Closed
		return ErrFetch.Wrap()
	}

	// set state
	f.stream = stream
	f.state = Live

	return nil
}

// Close will stop the subscription. No snapshots are delivered after Close
// returns.
func (f *Feed) Close() {
	// acquire mutex
	f.mutex.Lock()
	defer f.mutex.Unlock()

	// check state
	if f.state != Live {
		return
	}

	// close stream
	f.stream.Close()
	f.stream = nil

	// set state
	f.state = Closed
}

func (f *Feed) makeReceiver(ctx context.Context, opened chan<- error) roost.Receiver {
	established := false

	return func(event roost.Event, _ roost.ID, _ roost.Model, err error, _ []byte) error {
		switch event {
		case roost.Opened:
			// perform the initial fetch now that the change stream is live
			snapshot, err := f.fetch(ctx)
			if err != nil {
				opened <- err
				return roost.ErrStop
			}

			// deliver initial snapshot
			f.publish(snapshot)

			// signal establishment
			established = true
			opened <- nil

			return nil
		case roost.Errored:
			// fail establishment
			if !established {
				opened <- err
				return roost.ErrStop
			}

			// report subscription errors, the stream will resume on its own
			if f.reporter != nil {
				f.reporter(err)
			}

			return nil
		case roost.Created, roost.Updated, roost.Deleted:
			// fetch new snapshot
			snapshot, err := f.fetch(context.Background())
			if err != nil {
				if f.reporter != nil {
					f.reporter(err)
				}
				return nil
			}

			// deliver snapshot
			f.publish(snapshot)

			return nil
		}

		return nil
	}
}

func (f *Feed) fetch(ctx context.Context) ([]*Post, error) {
	// find all posts, newest first, ties broken by id to keep the order total
	posts := make([]*Post, 0)
	err := f.store.C(&Post{}).FindAll(ctx, &posts, bson.M{}, options.Find().SetSort(roost.Sort("-created_at", "-_id")))
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (f *Feed) publish(snapshot []*Post) {
	// replace a pending snapshot with the latest
	for {
		select {
		case f.snapshots <- snapshot:
			return
		case <-f.snapshots:
		}
	}
}
