package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_GenerateIsV7(t *testing.T) {
	id, err := uuid.Parse(NewUUIDGenerator().Generate())
	if err != nil {
		t.Fatalf("expected valid uuid, got: %v", err)
	}
	if id.Version() != 7 {
		t.Errorf("expected version 7, got %d", id.Version())
	}
}

func TestUUIDGenerator_NewIDPrefixes(t *testing.T) {
	g := NewUUIDGenerator()
	for _, prefix := range []string{GuestIDPrefix, RegisteredIDPrefix, TaskIDPrefix} {
		id := g.NewID(prefix)
		if !strings.HasPrefix(id, prefix) {
			t.Errorf("expected prefix %q in %q", prefix, id)
		}
		if _, err := uuid.Parse(strings.TrimPrefix(id, prefix)); err != nil {
			t.Errorf("expected uuid suffix in %q: %v", id, err)
		}
	}
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := NewUUIDGenerator()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := g.NewID(GuestIDPrefix)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
