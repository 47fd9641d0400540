package stream

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	SceneID  string          `json:"sceneId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	TypeError = "error"

	// Connection
	TypeWelcome = "welcome"

	// Projection jobs
	TypeProjectionStart = "projection.start"
	TypeProgress        = "projection.progress"
	TypeDone            = "projection.done"
)

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	SceneID  string `json:"sceneId"`
	Watchers int    `json:"watchers"`
}

// ProgressPayload mirrors one processed shape of a batch projection.
type ProgressPayload struct {
	JobID   string `json:"jobId,omitempty"`
	ShapeID uint32 `json:"shapeId"`
	OK      bool   `json:"ok"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Worker  int    `json:"worker"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(typ, sceneID string, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, SceneID: sceneID, Payload: raw}, nil
}
