package stream

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phytogl/phytogl/internal/batch"
)

// StartFunc launches a projection job for a scene on behalf of a client.
type StartFunc func(sceneID, clientID string)

type Room struct {
	sceneID string
	clients map[string]*Client // clientID -> client
	seq     int64
}

func NewRoom(sceneID string) *Room {
	return &Room{
		sceneID: sceneID,
		clients: make(map[string]*Client),
	}
}

// Hub fans projection progress out to the websocket clients watching a scene.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // sceneID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	onStart    StartFunc
}

func NewHub(onStart StartFunc) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		onStart:    onStart,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Watchers returns the number of clients attached to a scene.
func (h *Hub) Watchers(sceneID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[sceneID]
	if !ok {
		return 0
	}
	return len(room.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SceneID]
	if !ok {
		room = NewRoom(client.SceneID)
		h.rooms[client.SceneID] = room
	}
	room.clients[client.ClientID] = client
	watchers := len(room.clients)
	h.mu.Unlock()

	msg, err := newMessage(TypeWelcome, client.SceneID, WelcomePayload{
		ClientID: client.ClientID,
		SceneID:  client.SceneID,
		Watchers: watchers,
	})
	if err == nil {
		client.Send(msg)
	}

	slog.Info("client joined", "user", client.UserID, "scene", client.SceneID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SceneID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)

	if len(room.clients) == 0 {
		delete(h.rooms, client.SceneID)
	}
	h.mu.Unlock()

	slog.Info("client left", "user", client.UserID, "scene", client.SceneID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room.clients {
			close(c.send)
		}
		delete(h.rooms, id)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeProjectionStart:
		if h.onStart == nil {
			h.sendError(sender, "projection jobs are not available")
			return
		}
		h.onStart(sender.SceneID, sender.ClientID)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		h.sendError(sender, "unknown message type "+msg.Type)
	}
}

func (h *Hub) sendError(c *Client, text string) {
	msg, err := newMessage(TypeError, c.SceneID, ErrorPayload{Message: text})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[c.SceneID]; ok && room.clients[c.ClientID] == c {
		c.Send(msg)
	}
}

// Publish stamps msg with the room sequence number and sends it to every
// watcher of the scene. Scenes without watchers drop the message.
func (h *Hub) Publish(sceneID string, msg *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[sceneID]
	if !ok {
		return
	}
	room.seq++
	msg.SceneID = sceneID
	msg.Seq = room.seq
	for _, c := range room.clients {
		c.Send(msg)
	}
}

// Progress adapts a scene's room into a batch progress callback.
func (h *Hub) Progress(sceneID, jobID string) func(batch.Event) {
	return func(ev batch.Event) {
		msg, err := newMessage(TypeProgress, sceneID, ProgressPayload{
			JobID:   jobID,
			ShapeID: ev.ShapeID,
			OK:      ev.OK,
			Done:    ev.Done,
			Total:   ev.Total,
			Worker:  ev.Worker,
		})
		if err != nil {
			return
		}
		h.Publish(sceneID, msg)
	}
}

// Done publishes the final report of a projection job.
func (h *Hub) Done(sceneID string, report any) {
	msg, err := newMessage(TypeDone, sceneID, report)
	if err != nil {
		slog.Error("marshal report", "error", err, "scene", sceneID)
		return
	}
	h.Publish(sceneID, msg)
}

// Fail publishes a job error to the scene's watchers.
func (h *Hub) Fail(sceneID string, err error) {
	msg, merr := newMessage(TypeError, sceneID, ErrorPayload{Message: err.Error()})
	if merr != nil {
		return
	}
	h.Publish(sceneID, msg)
}
