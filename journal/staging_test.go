package journal

import (
	"reflect"
	"testing"
)

func TestStagingAddAndRemovePreservesOrder(t *testing.T) {
	t.Parallel()

	var s Staging
	s.Add("a")
	s.Add("b")
	s.Add("c")
	s.Add("d")

	s.RemoveAt(1)
	if got := s.Images(); !reflect.DeepEqual(got, []string{"a", "c", "d"}) {
		t.Fatalf("Images = %v", got)
	}

	s.RemoveAt(0)
	if got := s.Images(); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Fatalf("Images = %v", got)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d", s.Len())
	}
}

func TestStagingRemoveAtOutOfRange(t *testing.T) {
	t.Parallel()

	var s Staging
	s.Add("a")
	s.RemoveAt(-1)
	s.RemoveAt(1)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, out-of-range removes must be ignored", s.Len())
	}
}

func TestStagingImagesIsACopy(t *testing.T) {
	t.Parallel()

	var s Staging
	s.Add("a")
	imgs := s.Images()
	imgs[0] = "mutated"
	if s.Images()[0] != "a" {
		t.Fatal("Images must return a copy")
	}
}

func TestStagingClear(t *testing.T) {
	t.Parallel()

	var s Staging
	s.Add("a")
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len = %d after Clear", s.Len())
	}
}
