package lc_api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor answers each operation with canned data JSON.
type fakeExecutor struct {
	data map[string]string
	err  error
	ops  []string
}

func (f *fakeExecutor) Execute(_ context.Context, op, _ string, result any) error {
	f.ops = append(f.ops, op)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.data[op]), result)
}

func TestFetchProfile(t *testing.T) {
	ex := &fakeExecutor{data: map[string]string{OpProfile: `{
		"matchedUser": {
			"username": "alice",
			"profile": {"userAvatar": "https://assets.leetcode.com/a.png", "ranking": 4242},
			"submitStatsGlobal": {"acSubmissionNum": [
				{"difficulty": "All", "count": 120, "submissions": 300},
				{"difficulty": "Easy", "count": 80, "submissions": 150}
			]}
		},
		"allQuestionsCount": [{"difficulty": "All", "count": 3300}, {"difficulty": "Easy", "count": 850}]
	}`}}

	profile, err := FetchProfile(context.Background(), ex, "alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, []string{OpProfile}, ex.ops)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "https://assets.leetcode.com/a.png", profile.AvatarURL)
	require.NotNil(t, profile.Ranking)
	assert.Equal(t, 4242, *profile.Ranking)
	assert.Equal(t, 120, profile.Solved(DifficultyAll))
	assert.Equal(t, 0, profile.Solved("Hard"))
	assert.Len(t, profile.QuestionCounts, 2)
}

func TestFetchProfileUnknownUser(t *testing.T) {
	ex := &fakeExecutor{data: map[string]string{OpProfile: `{"matchedUser": null}`}}
	profile, err := FetchProfile(context.Background(), ex, "ghost")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestFetchProfileNullRanking(t *testing.T) {
	ex := &fakeExecutor{data: map[string]string{OpProfile: `{"matchedUser": {"username": "a", "profile": {"userAvatar": "", "ranking": null}, "submitStatsGlobal": {"acSubmissionNum": []}}}`}}
	profile, err := FetchProfile(context.Background(), ex, "a")
	require.NoError(t, err)
	assert.Nil(t, profile.Ranking)
}

func TestFetchPropagatesExecutorErrors(t *testing.T) {
	boom := transportError(OpStatus, errors.New("connection refused"))
	ex := &fakeExecutor{err: boom}

	_, err := FetchProfile(context.Background(), ex, "alice")
	assert.ErrorIs(t, err, ErrTransport)
	_, err = FetchDailyChallenge(context.Background(), ex)
	assert.ErrorIs(t, err, ErrTransport)
	_, err = FetchStatus(context.Background(), ex, "alice")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchDailyChallenge(t *testing.T) {
	ex := &fakeExecutor{data: map[string]string{OpDailyChallenge: `{
		"activeDailyCodingChallengeQuestion": {
			"date": "2026-10-18",
			"link": "/problems/two-sum/",
			"question": {"questionId": "1", "title": "Two Sum", "titleSlug": "two-sum", "difficulty": "Easy"}
		}
	}`}}

	daily, err := FetchDailyChallenge(context.Background(), ex)
	require.NoError(t, err)
	require.NotNil(t, daily)
	assert.Equal(t, DailyChallenge{
		Date:       "2026-10-18",
		Link:       "/problems/two-sum/",
		QuestionID: "1",
		Title:      "Two Sum",
		TitleSlug:  "two-sum",
		Difficulty: "Easy",
	}, *daily)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", daily.URL())
}

func TestFetchDailyChallengeNoneActive(t *testing.T) {
	ex := &fakeExecutor{data: map[string]string{OpDailyChallenge: `{"activeDailyCodingChallengeQuestion": null}`}}
	daily, err := FetchDailyChallenge(context.Background(), ex)
	require.NoError(t, err)
	assert.Nil(t, daily)
}

func TestDailyChallengeURLWithoutLink(t *testing.T) {
	d := DailyChallenge{TitleSlug: "add-two-numbers"}
	assert.Equal(t, "https://leetcode.com/problems/add-two-numbers/", d.URL())
}

func TestFetchStatus(t *testing.T) {
	ex := &fakeExecutor{data: map[string]string{OpStatus: `{
		"matchedUser": {
			"submitStatsGlobal": {"acSubmissionNum": [{"difficulty": "Easy", "count": 3}, {"difficulty": "All", "count": 7}]},
			"userCalendar": {"streak": 12, "activeYears": [2025, 2026]}
		},
		"recentSubmissionList": [
			{"title": "Two Sum", "titleSlug": "two-sum", "timestamp": "1760800000", "statusDisplay": "Accepted", "lang": "golang"},
			{"title": "Two Sum", "titleSlug": "two-sum", "timestamp": "1760790000", "statusDisplay": "Wrong Answer", "lang": "golang"}
		]
	}`}}

	report, err := FetchStatus(context.Background(), ex, "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, report.TotalSolved)
	assert.Equal(t, 12, report.Streak)
	require.Len(t, report.Submissions, 2)
	assert.True(t, report.Submissions[0].Accepted())
	assert.False(t, report.Submissions[1].Accepted())
}

func TestFetchStatusWithoutUser(t *testing.T) {
	ex := &fakeExecutor{data: map[string]string{OpStatus: `{"matchedUser": null, "recentSubmissionList": null}`}}
	report, err := FetchStatus(context.Background(), ex, "ghost")
	require.NoError(t, err)
	assert.Equal(t, StatusReport{}, *report)
}
