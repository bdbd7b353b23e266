// Package models defines the data objects shared across scv packages.
package models

import (
	"fmt"
	"time"
)

// Class represents a class roster tracked by the instructor.
type Class struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Student represents a student enrolled in a class. The GitHub username
// defaults to the plain username when not set explicitly.
type Student struct {
	ID             int64     `json:"id"`
	ClassID        int64     `json:"class_id"`
	Username       string    `json:"username"`
	GitHubUsername string    `json:"github_username"`
	CreatedAt      time.Time `json:"created_at"`
}

// RepoName returns the GitHub Pages repository tracked for this student.
func (s Student) RepoName() string {
	return s.GitHubUsername + ".github.io"
}

// RepoURL returns the HTTPS clone URL for the student's tracked repository.
func (s Student) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", s.GitHubUsername, s.RepoName())
}

// CommitInfo summarizes a single commit fetched from GitHub.
type CommitInfo struct {
	SHA     string
	Author  string
	Email   string
	Message string
	Date    time.Time
}

// WeekActivity aggregates a student's commits over the last five weekdays.
type WeekActivity struct {
	Student      Student
	DailyCommits map[string]int // keyed by weekday label, e.g. "Mon"
	TotalCommits int
	LatestCommit *time.Time
	Err          string // non-empty when the fetch for this student failed
}

// RepoStatus describes the local checkout state for a student's repository.
type RepoStatus struct {
	Student Student
	Path    string
	Cloned  bool
}

// OpResult reports the outcome of a git operation run for one student.
type OpResult struct {
	Username string
	Err      string // empty on success
}

// Ok reports whether the operation succeeded.
func (r OpResult) Ok() bool { return r.Err == "" }

const (
	// StoreFilename holds the class and student rows under the data dir.
	StoreFilename = "scv.json"
	// ActivityExportPattern names week-activity exports, e.g. "CS101-activity.xlsx".
	ActivityExportPattern = "%s-activity.xlsx"
)
