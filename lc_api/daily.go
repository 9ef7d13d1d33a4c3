package lc_api

import (
	"context"
	"strings"
)

const baseURL = "https://leetcode.com"

type DailyChallenge struct {
	// Date is in LeetCode's timezone, which may not be the viewer's.
	Date       string
	Link       string
	QuestionID string
	Title      string
	TitleSlug  string
	Difficulty string
}

func (d *DailyChallenge) URL() string {
	if strings.HasPrefix(d.Link, "/") {
		return baseURL + d.Link
	}
	return baseURL + "/problems/" + d.TitleSlug + "/"
}

type dailyChallengeResponse struct {
	ActiveDailyCodingChallengeQuestion *struct {
		Date     string `json:"date"`
		Link     string `json:"link"`
		Question struct {
			QuestionId string `json:"questionId"`
			Title      string `json:"title"`
			TitleSlug  string `json:"titleSlug"`
			Difficulty string `json:"difficulty"`
		} `json:"question"`
	} `json:"activeDailyCodingChallengeQuestion"`
}

// FetchDailyChallenge returns nil without an error when no challenge is active.
func FetchDailyChallenge(ctx context.Context, ex Executor) (*DailyChallenge, error) {
	result, err := makeGraphqlRequest[dailyChallengeResponse](ctx, ex, OpDailyChallenge, DailyChallengeQuery())
	if err != nil {
		return nil, err
	}
	active := result.ActiveDailyCodingChallengeQuestion
	if active == nil {
		return nil, nil
	}
	return &DailyChallenge{
		Date:       active.Date,
		Link:       active.Link,
		QuestionID: active.Question.QuestionId,
		Title:      active.Question.Title,
		TitleSlug:  active.Question.TitleSlug,
		Difficulty: active.Question.Difficulty,
	}, nil
}
