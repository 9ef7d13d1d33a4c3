package lc_api

import (
	"context"

	"github.com/nraghuveer/lc-status/protocols"
)

const StatusAccepted = "Accepted"

type Submission struct {
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	// Timestamp is unix seconds, sent by LeetCode as a string.
	Timestamp     string `json:"timestamp"`
	StatusDisplay string `json:"statusDisplay"`
	Lang          string `json:"lang"`
}

func (s Submission) Accepted() bool { return s.StatusDisplay == StatusAccepted }

// Submissions is one unordered batch from recentSubmissionList.
type Submissions []Submission

func (s Submissions) CreateIterator() protocols.Iterator[Submission] {
	return protocols.FromSlice(s)
}

type StatusReport struct {
	TotalSolved int
	Streak      int
	Submissions Submissions
}

type statusResponse struct {
	MatchedUser *struct {
		SubmitStatsGlobal struct {
			AcSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
		} `json:"submitStatsGlobal"`
		UserCalendar *struct {
			Streak      int   `json:"streak"`
			ActiveYears []int `json:"activeYears"`
		} `json:"userCalendar"`
	} `json:"matchedUser"`
	RecentSubmissionList Submissions `json:"recentSubmissionList"`
}

// FetchStatus never returns a nil report on success; missing user data reads as zero.
func FetchStatus(ctx context.Context, ex Executor, username string) (*StatusReport, error) {
	result, err := makeGraphqlRequest[statusResponse](ctx, ex, OpStatus, StatusQuery(username))
	if err != nil {
		return nil, err
	}
	report := &StatusReport{Submissions: result.RecentSubmissionList}
	if user := result.MatchedUser; user != nil {
		report.TotalSolved = countFor(user.SubmitStatsGlobal.AcSubmissionNum, DifficultyAll)
		if user.UserCalendar != nil {
			report.Streak = user.UserCalendar.Streak
		}
	}
	return report, nil
}
