package points

// ClampInput carries everything the clamp needs, loaded under the
// coordinator's row lock.
type ClampInput struct {
	Requested     int
	DailyTotal    int  // points already earned today
	WeeklyTotal   int  // points already earned this ISO week, today included
	ActivityTotal int  // points already earned today for this activity
	GlobalCap     int  // zero or negative disables the cap
	WeeklyCap     int
	ActivityCap   *int // nil means the rule sets no per-activity limit
}

// ClampOutcome is the clamp decision. Awarded is what actually credits;
// the flags drive client messaging, never errors.
type ClampOutcome struct {
	Awarded           int
	IsPointsTruncated bool
	IsLimitReached    bool
}

// ApplyCaps clamps a requested award against the global daily cap, the
// weekly cap and the per-activity cap, in that order. Each cap shrinks the
// award to its remaining headroom; the final award is the minimum across
// all applicable caps and never goes negative.
func ApplyCaps(in ClampInput) ClampOutcome {
	awarded := in.Requested
	if awarded < 0 {
		awarded = 0
	}

	if in.GlobalCap > 0 {
		awarded = clampTo(awarded, in.GlobalCap-in.DailyTotal)
	}
	if in.WeeklyCap > 0 {
		awarded = clampTo(awarded, in.WeeklyCap-in.WeeklyTotal)
	}
	if in.ActivityCap != nil && *in.ActivityCap > 0 {
		awarded = clampTo(awarded, *in.ActivityCap-in.ActivityTotal)
	}

	out := ClampOutcome{Awarded: awarded}
	out.IsPointsTruncated = awarded < in.Requested
	out.IsLimitReached = in.Requested > 0 && awarded == 0
	return out
}

func clampTo(awarded, headroom int) int {
	if headroom < 0 {
		headroom = 0
	}
	if awarded > headroom {
		return headroom
	}
	return awarded
}
