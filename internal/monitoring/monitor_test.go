package monitoring

import "testing"

func TestIncrementAndCount(t *testing.T) {
	m := NewMonitor()

	m.Increment("full_syncs")
	m.Increment("full_syncs")
	m.Increment("purchases_synced")

	if got := m.Count("full_syncs"); got != 2 {
		t.Errorf("Count(full_syncs) = %d, want 2", got)
	}
	if got := m.Count("purchases_synced"); got != 1 {
		t.Errorf("Count(purchases_synced) = %d, want 1", got)
	}
	if got := m.Count("never_bumped"); got != 0 {
		t.Errorf("Count(never_bumped) = %d, want 0", got)
	}
}

func TestSnapshotIncludesUptime(t *testing.T) {
	m := NewMonitor()
	m.Increment("full_syncs")

	snap := m.Snapshot()
	if _, ok := snap["uptime_seconds"]; !ok {
		t.Error("Snapshot() missing uptime_seconds")
	}
	if snap["full_syncs"] != int64(1) {
		t.Errorf("Snapshot()[full_syncs] = %v, want 1", snap["full_syncs"])
	}
}

func TestReset(t *testing.T) {
	m := NewMonitor()
	m.Increment("full_syncs")
	m.Reset()

	if got := m.Count("full_syncs"); got != 0 {
		t.Errorf("Count after Reset = %d, want 0", got)
	}
}
