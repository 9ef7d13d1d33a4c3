package lc_api

import (
	"context"
)

const DifficultyAll = "All"

type DifficultyCount struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

type Profile struct {
	Username       string
	AvatarURL      string
	Ranking        *int
	SubmitStats    []DifficultyCount
	QuestionCounts []DifficultyCount
}

// Solved returns the accepted count for difficulty, 0 when LeetCode did not report it.
func (p *Profile) Solved(difficulty string) int {
	return countFor(p.SubmitStats, difficulty)
}

func countFor(counts []DifficultyCount, difficulty string) int {
	for _, c := range counts {
		if c.Difficulty == difficulty {
			return c.Count
		}
	}
	return 0
}

type profileResponse struct {
	MatchedUser *struct {
		Username string `json:"username"`
		Profile  struct {
			UserAvatar string `json:"userAvatar"`
			Ranking    *int   `json:"ranking"`
		} `json:"profile"`
		SubmitStatsGlobal struct {
			AcSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
		} `json:"submitStatsGlobal"`
	} `json:"matchedUser"`
	AllQuestionsCount []DifficultyCount `json:"allQuestionsCount"`
}

// FetchProfile returns nil without an error when no such user exists.
func FetchProfile(ctx context.Context, ex Executor, username string) (*Profile, error) {
	result, err := makeGraphqlRequest[profileResponse](ctx, ex, OpProfile, ProfileQuery(username))
	if err != nil {
		return nil, err
	}
	user := result.MatchedUser
	if user == nil {
		return nil, nil
	}
	return &Profile{
		Username:       user.Username,
		AvatarURL:      user.Profile.UserAvatar,
		Ranking:        user.Profile.Ranking,
		SubmitStats:    user.SubmitStatsGlobal.AcSubmissionNum,
		QuestionCounts: result.AllQuestionsCount,
	}, nil
}
