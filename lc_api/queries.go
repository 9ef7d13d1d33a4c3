package lc_api

import (
	"encoding/json"
	"fmt"
)

const (
	OpProfile        = "userProfile"
	OpDailyChallenge = "dailyChallenge"
	OpStatus         = "userStatus"
)

const profileQuery = `
{
  matchedUser(username: %s) {
    username
    profile {
      userAvatar
      ranking
    }
    submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
        submissions
      }
    }
  }
  allQuestionsCount {
    difficulty
    count
  }
}
`

const dailyChallengeQuery = `
{
  activeDailyCodingChallengeQuestion {
    date
    link
    question {
      questionId
      title
      titleSlug
      difficulty
    }
  }
}
`

const statusQuery = `
{
  matchedUser(username: %[1]s) {
    submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
      }
    }
    userCalendar {
      streak
      activeYears
    }
  }
  recentSubmissionList(username: %[1]s) {
    title
    titleSlug
    timestamp
    statusDisplay
    lang
  }
}
`

func ProfileQuery(username string) string {
	return fmt.Sprintf(profileQuery, graphqlString(username))
}

func DailyChallengeQuery() string {
	return dailyChallengeQuery
}

func StatusQuery(username string) string {
	return fmt.Sprintf(statusQuery, graphqlString(username))
}

// graphqlString quotes s as a GraphQL string literal. JSON string escapes
// are a subset of what GraphQL accepts.
func graphqlString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
