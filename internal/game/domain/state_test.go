package domain

import (
	"reflect"
	"testing"
)

func TestNewRoundStateMoltSlots(t *testing.T) {
	tests := []struct {
		name    string
		players int
		want    int
	}{
		{name: "small pod", players: 6, want: 1},
		{name: "boundary small", players: 9, want: 1},
		{name: "boundary large", players: 10, want: 2},
		{name: "large pod", players: 16, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewRoundState(tt.players)
			if state.MoltsRemaining != tt.want {
				t.Fatalf("expected %d molt slots, got %d", tt.want, state.MoltsRemaining)
			}
		})
	}
}

func TestConsumeMoltNeverNegative(t *testing.T) {
	state := NewRoundState(6)
	state.ConsumeMolt()
	state.ConsumeMolt()
	if state.MoltsRemaining != 0 {
		t.Fatalf("expected 0 molt slots, got %d", state.MoltsRemaining)
	}
}

func TestStringSetSortedDeduplicates(t *testing.T) {
	set := NewStringSet("c", "a")
	set.Add("b")
	set.Add("a")

	if got := set.Sorted(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted members, got %v", got)
	}
	if !set.Has("b") {
		t.Fatal("expected membership for b")
	}

	set.Remove("b")
	if set.Has("b") {
		t.Fatal("expected b removed")
	}

	set.Clear()
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %v", set.Sorted())
	}
}
