package jobclient

import (
	"context"
	"net/url"
	"strings"

	"jobtrack_backend/ws"

	"github.com/gorilla/websocket"
)

// NotifyFunc receives each realtime event after it has been merged into the
// local store. Typical use is surfacing a toast.
type NotifyFunc func(event ws.Event)

// Listen connects to the realtime channel and merges every pushed snapshot
// into the local store by record id, so the local view converges on the
// server state even for changes made elsewhere. Blocks until ctx is done or
// the connection drops.
func (c *Client) Listen(ctx context.Context, onNotify NotifyFunc) error {
	wsURL, err := c.websocketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var event ws.Event
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		if event.Job != nil {
			c.Store.Upsert(*event.Job)
		}
		if onNotify != nil {
			onNotify(event)
		}
	}
}

func (c *Client) websocketURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"

	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
