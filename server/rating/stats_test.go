package rating

import (
	"math"
	"testing"
)

func TestAggregate(t *testing.T) {
	matches := []Match{
		matchAt("a", "b", "a", 20, true, "2025-03-01", 0),
		matchAt("a", "b", "a", 10, true, "2025-03-01", 1),
		matchAt("b", "a", "b", 20, true, "2025-03-02", 0),
		matchAt("a", "c", "a", 20, false, "2025-03-03", 0),
		matchAt("a", "b", "", 20, true, "2025-03-04", 0), // unresolved, skipped
		matchAt("b", "c", "c", 20, true, "2025-03-04", 1), // not a's match
	}

	st := Aggregate("a", matches)
	if st.Played != 4 || st.Wins != 3 || st.Losses != 1 {
		t.Errorf("record = %d/%d/%d, want 4 played, 3 wins, 1 loss", st.Played, st.Wins, st.Losses)
	}
	if st.Rated != 3 || st.Casual != 1 {
		t.Errorf("rated/casual = %d/%d, want 3/1", st.Rated, st.Casual)
	}
	if st.ShortFmt != 1 || st.LongFmt != 3 {
		t.Errorf("formats = %d/%d, want 1 short, 3 long", st.ShortFmt, st.LongFmt)
	}
	if st.Streak != 1 {
		t.Errorf("streak = %d, want 1 (casual win after the loss)", st.Streak)
	}
	if math.Abs(st.WinRate()-0.75) > 1e-12 {
		t.Errorf("win rate = %v, want 0.75", st.WinRate())
	}
}

func TestAggregateLossStreak(t *testing.T) {
	matches := []Match{
		matchAt("a", "b", "a", 20, true, "2025-03-01", 0),
		matchAt("a", "b", "b", 20, true, "2025-03-02", 0),
		matchAt("a", "b", "b", 20, true, "2025-03-03", 0),
	}
	if st := Aggregate("a", matches); st.Streak != -2 {
		t.Errorf("streak = %d, want -2", st.Streak)
	}
}

func TestAggregateEmpty(t *testing.T) {
	st := Aggregate("a", nil)
	if st.Played != 0 || st.WinRate() != 0 || st.Streak != 0 {
		t.Errorf("empty record = %+v", st)
	}
}
