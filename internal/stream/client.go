package stream

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait   = 10 * time.Second
	pingPeriod  = 30 * time.Second
	maxMsgSize  = 16 * 1024
	sendBacklog = 256
)

var errSendClosed = errors.New("send queue closed")

// Client is one websocket connection watching a scene.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan *Message
	UserID   string
	SceneID  string
	ClientID string
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, sceneID, clientID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan *Message, sendBacklog),
		UserID:   userID,
		SceneID:  sceneID,
		ClientID: clientID,
	}
}

// Send queues msg without blocking; a full queue drops it.
func (c *Client) Send(msg *Message) {
	select {
	case c.send <- msg:
	default:
		slog.Warn("client send queue full, dropping message", "client", c.ClientID, "type", msg.Type)
	}
}

// run pumps messages both ways until either direction fails or ctx ends.
func (c *Client) run(ctx context.Context) error {
	defer c.conn.CloseNow()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer c.hub.Unregister(c)
		return c.readLoop(ctx)
	})
	g.Go(func() error {
		return c.writeLoop(ctx)
	})
	return g.Wait()
}

func (c *Client) readLoop(ctx context.Context) error {
	c.conn.SetReadLimit(maxMsgSize)
	for {
		var msg Message
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			return err
		}
		msg.UserID = c.UserID
		msg.ClientID = c.ClientID
		msg.SceneID = c.SceneID
		c.hub.handleMessage(c, &msg)
	}
}

func (c *Client) writeLoop(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.Close(websocket.StatusGoingAway, "scene closed")
				return errSendClosed
			}
			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err := wsjson.Write(wctx, c.conn, msg)
			cancel()
			if err != nil {
				return err
			}
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Serve upgrades the request and attaches the connection to sceneID's room
// until the peer goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sceneID, userID string, origins []string) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h, conn, userID, sceneID, uuid.New().String())
	h.Register(client)

	err = client.run(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
	default:
		if !errors.Is(err, errSendClosed) && !errors.Is(err, context.Canceled) {
			slog.Debug("websocket closed", "error", err, "client", client.ClientID)
		}
	}
}
