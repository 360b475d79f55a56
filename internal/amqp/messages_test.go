package amqp

import "testing"

func TestNewSnapshotRequestMessage(t *testing.T) {
	m := NewSnapshotRequestMessage("allocation")
	if m.ID == "" {
		t.Fatalf("expected generated id")
	}
	if m.Kind != "allocation" {
		t.Fatalf("expected kind allocation, got %q", m.Kind)
	}
	if m.RequestedAt.IsZero() {
		t.Fatalf("expected requested_at set")
	}

	other := NewSnapshotRequestMessage("trend")
	if other.ID == m.ID {
		t.Fatalf("ids must be unique")
	}
}

func TestSnapshotRequestMessageJSON(t *testing.T) {
	m := NewSnapshotRequestMessage("comparison")
	data, err := m.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := SnapshotRequestMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != m.ID || got.Kind != m.Kind {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, m)
	}

	if _, err := SnapshotRequestMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
