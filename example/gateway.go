package main

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/256dpi/flock"
	"github.com/256dpi/flock/roost"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// gateway serves one synchronization client per websocket connection.
type gateway struct {
	factory func() *flock.Client
}

func newGateway(factory func() *flock.Client) *gateway {
	return &gateway{
		factory: factory,
	}
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// upgrade connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	// handle connection
	g.handle(conn)
}

func (g *gateway) handle(conn *websocket.Conn) {
	// create client
	client := g.factory()

	// create feed and thread
	feed := client.Feed()
	thread := client.Thread()

	// ensure cleanup
	defer func() {
		client.SignOut()
		_ = conn.Close()
	}()

	// serialize writes, gone is closed when the writer exits so senders
	// never block on a dead connection
	writes := make(chan interface{}, 16)
	done := make(chan struct{})
	gone := make(chan struct{})
	defer close(done)
	go func() {
		defer close(gone)
		for {
			select {
			case msg := <-writes:
				err := conn.WriteJSON(msg)
				if err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// forward feed snapshots
	go func() {
		for {
			select {
			case posts := <-feed.Snapshots():
				select {
				case writes <- map[string]interface{}{
					"type":  "feed",
					"posts": posts,
				}:
				case <-gone:
					return
				}
			case <-done:
				return
			}
		}
	}()

	// forward thread snapshots
	go func() {
		for {
			select {
			case snapshot := <-thread.Snapshots():
				select {
				case writes <- map[string]interface{}{
					"type":     "thread",
					"post":     snapshot.Post.Hex(),
					"comments": snapshot.Comments,
				}:
				case <-gone:
					return
				}
			case <-done:
				return
			}
		}
	}()

	// process commands
	for {
		// read message
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		// handle command
		err = g.command(context.Background(), client, feed, thread, msg)
		if err != nil {
			select {
			case writes <- map[string]interface{}{
				"type":    "error",
				"message": err.Error(),
			}:
			case <-gone:
			}
		}
	}
}

func (g *gateway) command(ctx context.Context, client *flock.Client, feed *flock.Feed, thread *flock.Thread, msg []byte) error {
	// parse command
	switch gjson.GetBytes(msg, "type").String() {
	case "sign-up":
		err := client.SignUp(ctx,
			gjson.GetBytes(msg, "email").String(),
			gjson.GetBytes(msg, "password").String(),
			gjson.GetBytes(msg, "name").String(),
		)
		if err != nil {
			return err
		}
		return feed.Open(ctx)
	case "sign-in":
		err := client.SignIn(ctx,
			gjson.GetBytes(msg, "email").String(),
			gjson.GetBytes(msg, "password").String(),
		)
		if err != nil {
			return err
		}
		return feed.Open(ctx)
	case "post":
		var image *flock.Attachment
		if data := gjson.GetBytes(msg, "image").String(); data != "" {
			bytes, err := base64.StdEncoding.DecodeString(data)
			if err != nil {
				return err
			}
			image = &flock.Attachment{
				Name: gjson.GetBytes(msg, "image-name").String(),
				Data: bytes,
			}
		}
		_, err := client.Composer().Post(ctx, gjson.GetBytes(msg, "description").String(), image)
		return err
	case "comment":
		post, err := roost.FromHex(gjson.GetBytes(msg, "post").String())
		if err != nil {
			return err
		}
		_, err = client.Composer().Comment(ctx, post, gjson.GetBytes(msg, "text").String())
		return err
	case "select":
		post, err := roost.FromHex(gjson.GetBytes(msg, "post").String())
		if err != nil {
			return err
		}
		return thread.Select(ctx, post)
	case "unselect":
		thread.Unselect()
		return nil
	case "profile":
		var avatar *flock.Attachment
		if data := gjson.GetBytes(msg, "avatar").String(); data != "" {
			bytes, err := base64.StdEncoding.DecodeString(data)
			if err != nil {
				return err
			}
			avatar = &flock.Attachment{
				Name: gjson.GetBytes(msg, "avatar-name").String(),
				Data: bytes,
			}
		}
		_, err := client.Profile().Update(ctx, gjson.GetBytes(msg, "name").String(), avatar)
		return err
	}

	return nil
}
