package arcade

import "testing"

func TestArena_SpawnBeyondCapacityIsNoOp(t *testing.T) {
	a := NewArena(Capacity)
	for i := 0; i < Capacity; i++ {
		if _, ok := a.Spawn(Entity{Kind: KindSquare, X: i}); !ok {
			t.Fatalf("spawn %d refused below capacity", i)
		}
	}
	idx, ok := a.Spawn(Entity{Kind: KindCircle})
	if ok || idx != -1 {
		t.Fatalf("spawn at capacity should be refused, got (%d, %v)", idx, ok)
	}
	if a.Len() != Capacity {
		t.Fatalf("expected %d live, got %d", Capacity, a.Len())
	}
	for i := 0; i < Capacity; i++ {
		if a.At(i).Kind != KindSquare || a.At(i).X != i {
			t.Fatalf("slot %d was disturbed by the refused spawn", i)
		}
	}
}

func TestArena_LimitClamped(t *testing.T) {
	if got := NewArena(50).Cap(); got != Capacity {
		t.Fatalf("limit above capacity should clamp to %d, got %d", Capacity, got)
	}
	if got := NewArena(0).Cap(); got != 1 {
		t.Fatalf("limit below one should clamp to 1, got %d", got)
	}
	a := NewArena(2)
	a.Spawn(Entity{})
	a.Spawn(Entity{})
	if _, ok := a.Spawn(Entity{}); ok {
		t.Fatal("spawn past a reduced limit should be refused")
	}
}

func TestArena_StableIndicesAndSweep(t *testing.T) {
	a := NewArena(4)
	i0, _ := a.Spawn(Entity{X: 10})
	i1, _ := a.Spawn(Entity{X: 20})
	i2, _ := a.Spawn(Entity{X: 30})

	a.At(i1).Resolved = true
	if n := a.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept, got %d", n)
	}
	if a.Live(i1) || a.Len() != 2 {
		t.Fatal("resolved entity should be gone after sweep")
	}
	if a.At(i0).X != 10 || a.At(i2).X != 30 {
		t.Fatal("surviving entities moved slots")
	}

	i3, _ := a.Spawn(Entity{X: 40})
	if i3 != i1 {
		t.Fatalf("freed slot %d should be reused, got %d", i1, i3)
	}
}

func TestArena_EachVisitsLiveInSlotOrder(t *testing.T) {
	a := NewArena(Capacity)
	for i := 0; i < 5; i++ {
		a.Spawn(Entity{X: i})
	}
	a.Remove(2)
	var seen []int
	a.Each(func(i int, e *Entity) { seen = append(seen, e.X) })
	want := []int{0, 1, 3, 4}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
	a.Clear()
	if a.Len() != 0 {
		t.Fatal("clear should free every slot")
	}
}
