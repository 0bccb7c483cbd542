package featureflags

import "testing"

func TestDefaults(t *testing.T) {
	m := NewManager("")

	if m.Enabled(FeedCache, 0) {
		t.Fatal("feed_cache should default to off")
	}
	if !m.Enabled(ReconcileEndpoint, 0) {
		t.Fatal("reconcile_endpoint should default to on")
	}
}

func TestOverrides(t *testing.T) {
	m := NewManager(" FEED_CACHE = on , reconcile_endpoint=off, bad ,x=")

	if !m.Enabled(FeedCache, 0) {
		t.Fatal("feed_cache override should apply")
	}
	if m.Enabled(ReconcileEndpoint, 0) {
		t.Fatal("reconcile_endpoint override should apply")
	}
	if _, ok := m.Raw()["x"]; ok {
		t.Fatal("empty values must be ignored")
	}
	if got := m.Names(); len(got) != 2 || got[0] != FeedCache {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,junk=abc%")

	if !m.Enabled("always", 0) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", 1) || m.Enabled("junk", 1) {
		t.Fatal("0% and malformed rollouts should be disabled")
	}

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", 42); got != first {
			t.Fatal("rollout evaluation must be deterministic per user")
		}
	}
	if m.Enabled("canary", 0) {
		t.Fatal("percentage rollout requires a user")
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager
	if m.Enabled(FeedCache, 1) {
		t.Fatal("nil manager enables nothing")
	}
}
