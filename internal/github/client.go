// Package github fetches commit activity for student GitHub Pages
// repositories ({username}.github.io) through the REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/asp2131/rusty-scv/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// requestTimeout bounds a single API call. Screens poll for results,
// so a hung request must not outlive the user's patience.
const requestTimeout = 15 * time.Second

// Client talks to the GitHub REST API. A zero token is valid and uses
// the unauthenticated rate limit.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient returns a client authenticating with token when non-empty.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// apiCommit mirrors the fields of the commits endpoint we consume.
type apiCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
		Message string `json:"message"`
	} `json:"commit"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "scv")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	return c.httpClient.Do(req)
}

// apiError renders non-success responses the way users see them.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("GitHub API error %s: %s", resp.Status, string(body))
}

// CommitsBetween lists commits to the student's Pages repository in
// [since, until]. A missing repository yields an empty list, not an
// error.
func (c *Client) CommitsBetween(ctx context.Context, username string, since, until time.Time) ([]models.CommitInfo, error) {
	repo := username + ".github.io"
	query := url.Values{
		"since":    {since.Format(time.RFC3339)},
		"until":    {until.Format(time.RFC3339)},
		"per_page": {"100"},
	}
	resp, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", username, repo), query)
	if err != nil {
		return nil, fmt.Errorf("fetch commits for %s: %w", username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var raw []apiCommit
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse GitHub API response: %w", err)
		}
		commits := make([]models.CommitInfo, 0, len(raw))
		for _, rc := range raw {
			commits = append(commits, models.CommitInfo{
				SHA:     rc.SHA,
				Author:  rc.Commit.Author.Name,
				Email:   rc.Commit.Author.Email,
				Message: rc.Commit.Message,
				Date:    rc.Commit.Author.Date,
			})
		}
		return commits, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	default:
		return nil, apiError(resp)
	}
}

// LatestCommit returns the newest commit to the student's Pages
// repository, or nil when the repository is missing or has no commits.
func (c *Client) LatestCommit(ctx context.Context, username string) (*models.CommitInfo, error) {
	repo := username + ".github.io"
	query := url.Values{"per_page": {"1"}}
	resp, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", username, repo), query)
	if err != nil {
		return nil, fmt.Errorf("fetch latest commit for %s: %w", username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var raw []apiCommit
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse GitHub API response: %w", err)
		}
		if len(raw) == 0 {
			return nil, nil
		}
		rc := raw[0]
		return &models.CommitInfo{
			SHA:     rc.SHA,
			Author:  rc.Commit.Author.Name,
			Email:   rc.Commit.Author.Email,
			Message: rc.Commit.Message,
			Date:    rc.Commit.Author.Date,
		}, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	default:
		return nil, apiError(resp)
	}
}

// RepoExists reports whether the student's Pages repository exists.
func (c *Client) RepoExists(ctx context.Context, username string) (bool, error) {
	repo := username + ".github.io"
	resp, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", username, repo), nil)
	if err != nil {
		return false, fmt.Errorf("check repository for %s: %w", username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, apiError(resp)
	}
}

// WeekActivity aggregates a student's commits over the five most
// recent weekdays. Fetch failures are reported in the Err field so one
// broken student does not fail the whole roster.
func (c *Client) WeekActivity(ctx context.Context, student models.Student, now time.Time) models.WeekActivity {
	days := PastWeekdays(now, 5)
	daily := make(map[string]int, len(days))
	for _, day := range days {
		daily[WeekdayLabel(day)] = 0
	}
	activity := models.WeekActivity{Student: student, DailyCommits: daily}

	commits, err := c.CommitsBetween(ctx, student.GitHubUsername, weekWindowStart(now), now)
	if err != nil {
		activity.Err = err.Error()
		return activity
	}

	for _, commit := range commits {
		label := WeekdayLabel(commit.Date.Weekday())
		if _, tracked := daily[label]; !tracked {
			continue
		}
		daily[label]++
		activity.TotalCommits++
		if activity.LatestCommit == nil || commit.Date.After(*activity.LatestCommit) {
			date := commit.Date
			activity.LatestCommit = &date
		}
	}
	return activity
}

// PastWeekdays returns the count most recent weekdays (Mon-Fri) up to
// and including now's day when it is one, in chronological order.
func PastWeekdays(now time.Time, count int) []time.Weekday {
	days := make([]time.Weekday, 0, count)
	current := now
	for len(days) < count {
		wd := current.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days = append(days, wd)
		}
		current = current.AddDate(0, 0, -1)
	}
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

// WeekdayLabel returns the three-letter label for a weekday.
func WeekdayLabel(day time.Weekday) string {
	return day.String()[:3]
}

// weekWindowStart returns the beginning of the commit window: seven
// days before the most recent weekday.
func weekWindowStart(now time.Time) time.Time {
	current := now
	for current.Weekday() == time.Saturday || current.Weekday() == time.Sunday {
		current = current.AddDate(0, 0, -1)
	}
	return current.AddDate(0, 0, -7)
}
