package textproc

import "testing"

func TestSegment_TwoQuestions(t *testing.T) {
	segs := Segment("Question 1\nFoo\nQuestion 2\nBar")
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %q", len(segs), segs)
	}
	if segs[0] != "Question 1\nFoo" {
		t.Errorf("expected %q, got %q", "Question 1\nFoo", segs[0])
	}
	if segs[1] != "Question 2\nBar" {
		t.Errorf("expected %q, got %q", "Question 2\nBar", segs[1])
	}
}

func TestSegment_ShortQMarker(t *testing.T) {
	segs := Segment("Q1 Define work.\nQ 2 Define power.")
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %q", len(segs), segs)
	}
	if segs[0] != "Q1 Define work." {
		t.Errorf("expected %q, got %q", "Q1 Define work.", segs[0])
	}
}

func TestSegment_CaseInsensitive(t *testing.T) {
	segs := Segment("question 1 alpha text\nQUESTION 2 beta text")
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %q", len(segs), segs)
	}
}

func TestSegment_NoMarkerReturnsWholeBlob(t *testing.T) {
	in := "Write an essay on climate change."
	segs := Segment(in)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0] != in {
		t.Errorf("expected whole blob, got %q", segs[0])
	}
}

func TestSegment_NoiseBeforeFirstMarkerDropped(t *testing.T) {
	segs := Segment("p.3\nQuestion 1\nExplain gravity.")
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %q", len(segs), segs)
	}
	if segs[0] != "Question 1\nExplain gravity." {
		t.Errorf("expected noise prefix dropped, got %q", segs[0])
	}
}

func TestSegment_LongPrefixKept(t *testing.T) {
	segs := Segment("General notes about the paper\nQuestion 1\nExplain gravity.")
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %q", len(segs), segs)
	}
	if segs[0] != "General notes about the paper" {
		t.Errorf("expected prefix kept, got %q", segs[0])
	}
}

func TestSegment_Totality(t *testing.T) {
	// Even pathological marker-only input returns at least one segment.
	segs := Segment("Q 1")
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0] != "Q 1" {
		t.Errorf("expected %q, got %q", "Q 1", segs[0])
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	if segs := Segment("   \n  "); segs != nil {
		t.Errorf("expected nil for blank input, got %q", segs)
	}
}

func TestSegment_MarkerInsideWordIgnored(t *testing.T) {
	segs := Segment("See the FAQ 1 for details on this topic.")
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %q", len(segs), segs)
	}
}
