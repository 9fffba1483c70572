package roost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStream(t *testing.T) {
	tester.Clean()

	open := make(chan struct{})
	recv := make(chan struct{})
	done := make(chan struct{})

	i := 0
	stream := OpenStream(tester.Store, &testModel{}, nil, func(event Event, id ID, model Model, err error, token []byte) error {
		i++

		switch i {
		case 1:
			assert.Equal(t, Opened, event)
			assert.Zero(t, id)
			assert.Nil(t, model)
			assert.NoError(t, err)

			close(open)
		case 2:
			assert.Equal(t, Created, event)
			assert.NotZero(t, id)
			assert.NotNil(t, model)
			assert.Equal(t, "foo", model.(*testModel).Value)
			assert.NotNil(t, token)
		case 3:
			assert.Equal(t, Updated, event)
			assert.NotZero(t, id)
			assert.NotNil(t, model)
			assert.Equal(t, "bar", model.(*testModel).Value)
			assert.NotNil(t, token)
		case 4:
			assert.Equal(t, Deleted, event)
			assert.NotZero(t, id)
			assert.Nil(t, model)
			assert.NotNil(t, token)

			close(recv)
		case 5:
			assert.Equal(t, Stopped, event)
			assert.Zero(t, id)
			assert.Nil(t, model)
			assert.NoError(t, err)

			close(done)
		}

		return nil
	})

	<-open

	// insert model
	model := &testModel{
		Base:    B(),
		Value:   "foo",
		Created: time.Now(),
	}
	_, err := tester.Store.C(model).InsertOne(nil, model)
	assert.NoError(t, err)

	// update model
	_, err = tester.Store.C(model).UpdateOne(nil, bson.M{"_id": model.ID()}, bson.M{
		"$set": bson.M{"value": "bar"},
	})
	assert.NoError(t, err)

	// delete model
	_, err = tester.Store.C(model).Native().DeleteOne(nil, bson.M{"_id": model.ID()})
	assert.NoError(t, err)

	<-recv

	stream.Close()

	<-done
}

func TestStreamReceiverStop(t *testing.T) {
	tester.Clean()

	done := make(chan struct{})

	i := 0
	stream := OpenStream(tester.Store, &testModel{}, nil, func(event Event, id ID, model Model, err error, token []byte) error {
		i++

		switch i {
		case 1:
			assert.Equal(t, Opened, event)
			return ErrStop
		case 2:
			assert.Equal(t, Stopped, event)
			close(done)
		}

		return nil
	})

	<-done

	stream.Close()
}
