package net

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Send delivers one command to the overlay at addr (host:port) and waits
// for its reply.
func Send(ctx context.Context, addr string, req Request) (Reply, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: Path}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return Reply{}, fmt.Errorf("connect %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	} else {
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	}

	if err := conn.WriteJSON(req); err != nil {
		return Reply{}, fmt.Errorf("send command: %w", err)
	}
	// skip events caused by other remotes
	for {
		var reply Reply
		if err := conn.ReadJSON(&reply); err != nil {
			return Reply{}, fmt.Errorf("read reply: %w", err)
		}
		if reply.Event {
			continue
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if !reply.OK {
			return reply, errors.New(reply.Error)
		}
		return reply, nil
	}
}
