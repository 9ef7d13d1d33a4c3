package reminder

import (
	"math"
	"strconv"
	"time"

	"github.com/nraghuveer/lc-status/lc_api"
)

type UserStatus struct {
	SolvedToday           int
	TotalSolved           int
	DailyProblemCompleted bool
	Streak                int
}

// DeriveStatus computes today's progress from one submission batch.
// totalSolved and streak are LeetCode's numbers and pass through untouched.
// An empty dailySlug never matches.
func DeriveStatus(submissions lc_api.Submissions, dailySlug string, totalSolved, streak int, now time.Time, loc *time.Location) UserStatus {
	if loc == nil {
		loc = time.Local
	}
	status := UserStatus{TotalSolved: totalSolved, Streak: streak}

	solved := make(map[string]struct{})
	iter := submissions.CreateIterator()
	for iter.HasNext() {
		sub, err := iter.Next()
		if err != nil {
			break
		}
		if !sub.Accepted() {
			continue
		}
		at, ok := parseTimestamp(sub.Timestamp)
		if !ok || !sameDay(at, now, loc) {
			continue
		}
		solved[sub.TitleSlug] = struct{}{}
		if dailySlug != "" && sub.TitleSlug == dailySlug {
			status.DailyProblemCompleted = true
		}
	}
	status.SolvedToday = len(solved)
	return status
}

func parseTimestamp(ts string) (time.Time, bool) {
	if sec, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(sec, 0), true
	}
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)), true
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
