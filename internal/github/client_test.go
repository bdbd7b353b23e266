package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asp2131/rusty-scv/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token")
	c.baseURL = srv.URL
	return c
}

const commitsJSON = `[
  {
    "sha": "abc123",
    "commit": {
      "author": {"name": "Mona Octocat", "email": "mona@example.com", "date": "2026-08-24T15:04:05Z"},
      "message": "update homepage"
    }
  },
  {
    "sha": "def456",
    "commit": {
      "author": {"name": "Mona Octocat", "email": "mona@example.com", "date": "2026-08-21T09:00:00Z"},
      "message": "fix css"
    }
  }
]`

func TestCommitsBetween(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(commitsJSON))
	})

	since := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	commits, err := c.CommitsBetween(context.Background(), "octocat", since, until)
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/octocat.github.io/commits", gotPath)
	assert.Equal(t, "token test-token", gotAuth)
	assert.Equal(t, []string{"100"}, gotQuery["per_page"])
	assert.Equal(t, []string{since.Format(time.RFC3339)}, gotQuery["since"])
	assert.Equal(t, []string{until.Format(time.RFC3339)}, gotQuery["until"])

	require.Len(t, commits, 2)
	assert.Equal(t, "abc123", commits[0].SHA)
	assert.Equal(t, "Mona Octocat", commits[0].Author)
	assert.Equal(t, "update homepage", commits[0].Message)
	assert.Equal(t, time.Date(2026, 8, 24, 15, 4, 5, 0, time.UTC), commits[0].Date)
}

func TestCommitsBetweenMissingRepoIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	commits, err := c.CommitsBetween(context.Background(), "ghost", time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestCommitsBetweenServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "rate limited"}`, http.StatusForbidden)
	})

	_, err := c.CommitsBetween(context.Background(), "octocat", time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GitHub API error 403")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestLatestCommit(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(commitsJSON))
	})

	latest, err := c.LatestCommit(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, gotQuery["per_page"])
	require.NotNil(t, latest)
	assert.Equal(t, "abc123", latest.SHA)
	assert.Equal(t, "update homepage", latest.Message)
	assert.Equal(t, time.Date(2026, 8, 24, 15, 4, 5, 0, time.UTC), latest.Date)
}

func TestLatestCommitNoCommits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	latest, err := c.LatestCommit(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestLatestCommitMissingRepo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	latest, err := c.LatestCommit(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRepoExists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/octocat/octocat.github.io" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	exists, err := c.RepoExists(context.Background(), "octocat")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.RepoExists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("")
	c.baseURL = srv.URL

	_, err := c.LatestCommit(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestWeekActivityAggregation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Mon 2026-08-24 twice, Fri 2026-08-21 once.
		_, _ = w.Write([]byte(`[
		  {"sha": "a", "commit": {"author": {"name": "m", "email": "m@e", "date": "2026-08-24T10:00:00Z"}, "message": "one"}},
		  {"sha": "b", "commit": {"author": {"name": "m", "email": "m@e", "date": "2026-08-24T16:00:00Z"}, "message": "two"}},
		  {"sha": "c", "commit": {"author": {"name": "m", "email": "m@e", "date": "2026-08-21T12:00:00Z"}, "message": "three"}}
		]`))
	})

	student := models.Student{ID: 1, ClassID: 1, Username: "mona", GitHubUsername: "mona"}
	// Wednesday.
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	activity := c.WeekActivity(context.Background(), student, now)
	assert.Empty(t, activity.Err)
	assert.Equal(t, 3, activity.TotalCommits)
	assert.Equal(t, 2, activity.DailyCommits["Mon"])
	assert.Equal(t, 1, activity.DailyCommits["Fri"])
	assert.Equal(t, 0, activity.DailyCommits["Wed"])
	require.NotNil(t, activity.LatestCommit)
	assert.Equal(t, time.Date(2026, 8, 24, 16, 0, 0, 0, time.UTC), *activity.LatestCommit)
}

func TestWeekActivityFetchErrorIsSoft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	student := models.Student{Username: "mona", GitHubUsername: "mona"}
	activity := c.WeekActivity(context.Background(), student, time.Now())

	assert.NotEmpty(t, activity.Err)
	assert.Zero(t, activity.TotalCommits)
	assert.Nil(t, activity.LatestCommit)
	// Day buckets still exist so the table renders.
	assert.Len(t, activity.DailyCommits, 5)
}

func TestPastWeekdays(t *testing.T) {
	// Wednesday: the five most recent weekdays are Thu Fri Mon Tue Wed.
	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	assert.Equal(t,
		[]time.Weekday{time.Thursday, time.Friday, time.Monday, time.Tuesday, time.Wednesday},
		PastWeekdays(wednesday, 5))

	// Saturday: the window ends on Friday.
	saturday := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t,
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		PastWeekdays(saturday, 5))
}

func TestWeekdayLabel(t *testing.T) {
	assert.Equal(t, "Mon", WeekdayLabel(time.Monday))
	assert.Equal(t, "Fri", WeekdayLabel(time.Friday))
}

func TestWeekWindowStart(t *testing.T) {
	// From a Sunday the window anchors on Friday, then spans a week back.
	sunday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	got := weekWindowStart(sunday)
	assert.Equal(t, time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC), got)

	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC), weekWindowStart(wednesday))
}
