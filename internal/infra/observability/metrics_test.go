package observability

import (
	"testing"
	"time"
)

func TestNewMetrics_IsIsolated(t *testing.T) {
	// Two instances must not collide: each owns a private registry.
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.IncrOperation("deposit", "accepted")
	if got := m2.GetStats().OperationsAccepted; got != 0 {
		t.Errorf("expected isolated registries, got %v accepted on second instance", got)
	}
}

func TestGetStats_SumsAcrossOperations(t *testing.T) {
	m := NewMetrics()
	m.IncrOperation("deposit", "accepted")
	m.IncrOperation("withdraw", "accepted")
	m.IncrOperation("transfer", "rejected")
	m.IncrSnapshotSave("success")
	m.IncrSnapshotSave("error")
	m.IncrSnapshotLoad("success")

	stats := m.GetStats()
	if stats.OperationsAccepted != 2 {
		t.Errorf("expected 2 accepted, got %v", stats.OperationsAccepted)
	}
	if stats.OperationsRejected != 1 {
		t.Errorf("expected 1 rejected, got %v", stats.OperationsRejected)
	}
	// Only successful saves/loads are surfaced.
	if stats.SnapshotSaves != 1 {
		t.Errorf("expected 1 snapshot save, got %v", stats.SnapshotSaves)
	}
	if stats.SnapshotLoads != 1 {
		t.Errorf("expected 1 snapshot load, got %v", stats.SnapshotLoads)
	}
}

func TestRecordOperationDuration(t *testing.T) {
	m := NewMetrics()
	// Must not panic for an unseen operation label.
	m.RecordOperationDuration("register_customer", 5*time.Millisecond)
}
