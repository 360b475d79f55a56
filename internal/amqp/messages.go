package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SnapshotRequestMessage asks the worker to render and export a chart
// snapshot. It carries only the chart kind; the worker loads the current
// records from the database.
type SnapshotRequestMessage struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewSnapshotRequestMessage(kind string) *SnapshotRequestMessage {
	return &SnapshotRequestMessage{
		ID:          uuid.NewString(),
		Kind:        kind,
		RequestedAt: time.Now(),
	}
}

func (m *SnapshotRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SnapshotRequestMessageFromJSON(data []byte) (*SnapshotRequestMessage, error) {
	var msg SnapshotRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
