package rating

import "testing"

func TestTraceEndsAtReplayRating(t *testing.T) {
	roster := []PlayerID{"a", "b", "c"}
	matches := []Match{
		matchAt("a", "b", "a", 20, true, "2025-03-01", 0),
		matchAt("a", "c", "c", 10, true, "2025-03-03", 0),
		matchAt("b", "c", "b", 20, true, "2025-03-03", 5),
		matchAt("a", "b", "a", 20, true, "2025-03-07", 0),
	}
	now := dateTime("2025-03-08")

	states := Replay(roster, matches, now)
	trace := TracePlayer(roster, matches, "a", now)

	if len(trace) != 3 {
		t.Fatalf("trace has %d points, want 3", len(trace))
	}
	last := trace[len(trace)-1]
	// The last trace point predates the trailing idle growth, so the rating
	// must match exactly while the RD may sit below the replayed value.
	if last.Rating != states["a"].Rating.Rating {
		t.Errorf("final trace rating %v != replay rating %v", last.Rating, states["a"].Rating.Rating)
	}
	if last.RD > states["a"].Rating.RD {
		t.Errorf("final trace RD %v above replay RD %v", last.RD, states["a"].Rating.RD)
	}
}

func TestTraceDayFields(t *testing.T) {
	roster := []PlayerID{"a", "b"}
	matches := []Match{
		matchAt("a", "b", "a", 20, true, "2025-03-01", 0),
		matchAt("a", "b", "b", 20, true, "2025-03-02", 0),
		matchAt("a", "b", "a", 20, true, "2025-03-02", 1),
		matchAt("a", "b", "", 20, true, "2025-03-04", 0), // unresolved: no point
	}
	trace := TracePlayer(roster, matches, "a", dateTime("2025-03-05"))

	if len(trace) != 2 {
		t.Fatalf("trace has %d points, want 2", len(trace))
	}
	if trace[0].Date != "2025-03-01" || trace[0].Result != "W" || trace[0].Matches != 1 {
		t.Errorf("day one point = %+v", trace[0])
	}
	if trace[1].Date != "2025-03-02" || trace[1].Result != "mixed" || trace[1].Matches != 2 {
		t.Errorf("day two point = %+v", trace[1])
	}
}

func TestTraceLossOnlyDay(t *testing.T) {
	roster := []PlayerID{"a", "b"}
	matches := []Match{matchAt("a", "b", "b", 20, true, "2025-03-01", 0)}
	trace := TracePlayer(roster, matches, "a", dateTime("2025-03-01"))
	if len(trace) != 1 || trace[0].Result != "L" {
		t.Fatalf("trace = %+v, want one L point", trace)
	}
	if trace[0].Rating >= DefaultRating {
		t.Errorf("losing day rating %v did not drop", trace[0].Rating)
	}
}

func TestTraceEmptyForBystander(t *testing.T) {
	roster := []PlayerID{"a", "b", "c"}
	matches := []Match{matchAt("a", "b", "a", 20, true, "2025-03-01", 0)}
	if trace := TracePlayer(roster, matches, "c", dateTime("2025-03-02")); len(trace) != 0 {
		t.Errorf("bystander trace = %+v, want empty", trace)
	}
}
