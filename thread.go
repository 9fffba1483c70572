package flock

import (
	"context"
	"sync"

	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/256dpi/flock/roost"
)

// ThreadSnapshot is a full ordered view of the comments of one post.
type ThreadSnapshot struct {
	// The post the comments belong to.
	Post roost.ID

	// The comments, oldest first.
	Comments []*Comment
}

// Thread is a live subscription to the comments of at most one post at a
// time. Selecting another post closes the previous subscription before the
// new one is opened, snapshots for a deselected post are never delivered
// afterwards.
type Thread struct {
	store    *roost.Store
	reporter func(error)

	mutex     sync.Mutex
	state     State
	selected  roost.ID
	stream    *roost.Stream
	snapshots chan ThreadSnapshot
}

// NewThread creates a new thread with no post selected.
func NewThread(store *roost.Store, reporter func(error)) *Thread {
	return &Thread{
		store:     store,
		reporter:  reporter,
		state:     Closed,
		snapshots: make(chan ThreadSnapshot, 1),
	}
}

// State returns the current subscription state.
func (t *Thread) State() State {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.state
}

// Selected returns the id of the selected post or a zero id if no post is
// selected.
func (t *Thread) Selected() roost.ID {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.selected
}

// Snapshots returns the channel on which snapshots are delivered. Only the
// latest snapshot is retained if the consumer falls behind.
func (t *Thread) Snapshots() <-chan ThreadSnapshot {
	return t.snapshots
}

// Select will subscribe to the comments of the specified post. A previous
// subscription is closed first. The initial fetch is performed after the
// change stream is established, comments added once Select returned are
// therefore always reflected in a following snapshot. If the subscription or
// the initial fetch fails no post is selected and the error is returned.
func (t *Thread) Select(ctx context.Context, post roost.ID) error {
	// acquire mutex
	t.mutex.Lock()
	defer t.mutex.Unlock()

	// check post
	if post.IsZero() {
		return xo.F("missing post id")
	}

	// close previous subscription
	t.unselect()

	// set state
	t.state = Opening

	// drop a pending snapshot of a previously selected post
	select {
	case <-t.snapshots:
	default:
	}

	// subscribe to changes
	opened := make(chan error, 1)
	stream := roost.OpenStream(t.store, &Comment{}, nil, t.makeReceiver(ctx, post, opened))

	// await establishment and the initial snapshot
	err := <-opened
	if err != nil {
		stream.Close()
		t.state = Closed
		return ErrFetch.Wrap()
	}

	// set selected post
	t.selected = post
	t.stream = stream

	// set state
	t.state = Live

	return nil
}

// Unselect will close the current subscription if one exists.
func (t *Thread) Unselect() {
	// acquire mutex
	t.mutex.Lock()
	defer t.mutex.Unlock()

	// close subscription
	t.unselect()

	// drop a pending snapshot
	select {
	case <-t.snapshots:
	default:
	}
}

// Close will close the thread.
func (t *Thread) Close() {
	t.Unselect()
}

func (t *Thread) unselect() {
	// check stream
	if t.stream != nil {
		t.stream.Close()
		t.stream = nil
	}

	// reset state
	t.selected = roost.Z()
	t.state = Closed
}

func (t *Thread) makeReceiver(ctx context.Context, post roost.ID, opened chan<- error) roost.Receiver {
	established := false

	return func(event roost.Event, _ roost.ID, model roost.Model, err error, _ []byte) error {
		switch event {
		case roost.Opened:
			// perform the initial fetch now that the change stream is live
			snapshot, err := t.fetch(ctx, post)
			if err != nil {
				opened <- err
				return roost.ErrStop
			}

			// deliver initial snapshot
			t.publish(snapshot)

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
			if t.reporter != nil {
				t.reporter(err)
			}

			return nil
		case roost.Created, roost.Updated, roost.Deleted:
			// skip comments of other posts, deletions carry no document and
			// always trigger a refetch of the selected post
			if comment, ok := model.(*Comment); ok && comment != nil && comment.Post != post {
				return nil
			}

			// fetch new snapshot
			snapshot, err := t.fetch(context.Background(), post)
			if err != nil {
				if t.reporter != nil {
					t.reporter(err)
				}
				return nil
			}

			// deliver snapshot
			t.publish(snapshot)

			return nil
		}

		return nil
	}
}

func (t *Thread) fetch(ctx context.Context, post roost.ID) (ThreadSnapshot, error) {
	// find all comments of the post, oldest first
	comments := make([]*Comment, 0)
	err := t.store.C(&Comment{}).FindAll(ctx, &comments, bson.M{
		"post_id": post,
	}, options.Find().SetSort(roost.Sort("created_at", "_id")))
	if err != nil {
		return ThreadSnapshot{}, err
	}

	return ThreadSnapshot{
		Post:     post,
		Comments: comments,
	}, nil
}

func (t *Thread) publish(snapshot ThreadSnapshot) {
	// replace a pending snapshot with the latest
	for {
		select {
		case t.snapshots <- snapshot:
			return
		case <-t.snapshots:
		}
	}
}
