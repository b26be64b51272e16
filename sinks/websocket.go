package sinks

import (
	"context"
	"net/url"

	"github.com/Comcast/datagen/core"

	"github.com/gorilla/websocket"
)

// WebSocket sends each formatted record as a text message.
type WebSocket struct {
	URL    string
	Format core.Formatter

	conn *websocket.Conn
}

// DialWebSocket connects to the URL.  A nil format means JSON.
func DialWebSocket(ctx context.Context, target string, format core.Formatter) (*WebSocket, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, core.Configf("websocket URL %q: %s", target, err)
	}
	if format == nil {
		format = JSON
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, &core.ResourceError{Resource: u.String(), Err: err}
	}
	return &WebSocket{
		URL:    u.String(),
		Format: format,
		conn:   conn,
	}, nil
}

// Record sends the record.
func (s *WebSocket) Record(ctx context.Context, r *core.Record) error {
	bs, err := s.Format(r)
	if err != nil {
		return err
	}
	if err = s.conn.WriteMessage(websocket.TextMessage, bs); err != nil {
		return &core.ResourceError{Resource: s.URL, Err: err}
	}
	return nil
}

// Close says goodbye and closes the connection.
func (s *WebSocket) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	s.conn.WriteMessage(websocket.CloseMessage, msg)
	return s.conn.Close()
}
