package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func TestCreateClass(t *testing.T) {
	s := newTestStore(t)

	class, err := s.CreateClass("CS101")
	require.NoError(t, err)
	assert.Equal(t, int64(1), class.ID)
	assert.Equal(t, "CS101", class.Name)
	assert.False(t, class.CreatedAt.IsZero())

	second, err := s.CreateClass("  CS202  ")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "CS202", second.Name, "name should be trimmed")
}

func TestCreateClassRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateClass("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestCreateClassRejectsDuplicateName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateClass("CS101")
	require.NoError(t, err)

	_, err = s.CreateClass("CS101")
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestListClassesOrderedByName(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Zoology", "Algorithms", "Compilers"} {
		_, err := s.CreateClass(name)
		require.NoError(t, err)
	}

	classes, err := s.ListClasses()
	require.NoError(t, err)
	require.Len(t, classes, 3)
	assert.Equal(t, "Algorithms", classes[0].Name)
	assert.Equal(t, "Compilers", classes[1].Name)
	assert.Equal(t, "Zoology", classes[2].Name)
}

func TestGetClass(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateClass("CS101")
	require.NoError(t, err)

	got, err := s.GetClass(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = s.GetClass(999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClassCascadesStudents(t *testing.T) {
	s := newTestStore(t)

	class, err := s.CreateClass("CS101")
	require.NoError(t, err)
	other, err := s.CreateClass("CS202")
	require.NoError(t, err)

	_, err = s.AddStudent(class.ID, "octocat")
	require.NoError(t, err)
	_, err = s.AddStudent(class.ID, "hubot")
	require.NoError(t, err)
	kept, err := s.AddStudent(other.ID, "octocat")
	require.NoError(t, err)

	require.NoError(t, s.DeleteClass(class.ID))

	_, err = s.GetClass(class.ID)
	require.ErrorIs(t, err, ErrNotFound)

	orphans, err := s.ListStudents(class.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	// Same username in another class survives the cascade.
	remaining, err := s.ListStudents(other.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestDeleteClassNotFound(t *testing.T) {
	s := newTestStore(t)
	require.ErrorIs(t, s.DeleteClass(7), ErrNotFound)
}

func TestAddStudent(t *testing.T) {
	s := newTestStore(t)

	class, err := s.CreateClass("CS101")
	require.NoError(t, err)

	student, err := s.AddStudent(class.ID, "octocat")
	require.NoError(t, err)
	assert.Equal(t, class.ID, student.ClassID)
	assert.Equal(t, "octocat", student.Username)
	assert.Equal(t, "octocat", student.GitHubUsername)
	assert.Equal(t, "octocat.github.io", student.RepoName())
}

func TestAddStudentRequiresExistingClass(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddStudent(42, "octocat")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddStudentRejectsDuplicateInSameClass(t *testing.T) {
	s := newTestStore(t)

	class, err := s.CreateClass("CS101")
	require.NoError(t, err)
	other, err := s.CreateClass("CS202")
	require.NoError(t, err)

	_, err = s.AddStudent(class.ID, "octocat")
	require.NoError(t, err)

	_, err = s.AddStudent(class.ID, "octocat")
	require.ErrorIs(t, err, ErrDuplicateStudent)

	// The same username may enroll in a different class.
	_, err = s.AddStudent(other.ID, "octocat")
	require.NoError(t, err)
}

func TestListStudentsOrderedByUsername(t *testing.T) {
	s := newTestStore(t)

	class, err := s.CreateClass("CS101")
	require.NoError(t, err)

	for _, name := range []string{"zed", "amy", "mona"} {
		_, err := s.AddStudent(class.ID, name)
		require.NoError(t, err)
	}

	students, err := s.ListStudents(class.ID)
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "amy", students[0].Username)
	assert.Equal(t, "mona", students[1].Username)
	assert.Equal(t, "zed", students[2].Username)
}

func TestDeleteStudent(t *testing.T) {
	s := newTestStore(t)

	class, err := s.CreateClass("CS101")
	require.NoError(t, err)
	student, err := s.AddStudent(class.ID, "octocat")
	require.NoError(t, err)

	require.NoError(t, s.DeleteStudent(student.ID))
	require.ErrorIs(t, s.DeleteStudent(student.ID), ErrNotFound)

	count, err := s.CountStudents(class.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountStudents(t *testing.T) {
	s := newTestStore(t)

	class, err := s.CreateClass("CS101")
	require.NoError(t, err)

	count, err := s.CountStudents(class.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.AddStudent(class.ID, "octocat")
	require.NoError(t, err)
	_, err = s.AddStudent(class.ID, "hubot")
	require.NoError(t, err)

	count, err = s.CountStudents(class.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s := New(dir)
	class, err := s.CreateClass("CS101")
	require.NoError(t, err)
	_, err = s.AddStudent(class.ID, "octocat")
	require.NoError(t, err)

	reopened := New(dir)
	classes, err := reopened.ListClasses()
	require.NoError(t, err)
	require.Len(t, classes, 1)

	students, err := reopened.ListStudents(class.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)

	// IDs keep increasing after reopen instead of being reused.
	second, err := reopened.CreateClass("CS202")
	require.NoError(t, err)
	assert.Greater(t, second.ID, class.ID)
}

func TestCorruptDataFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scv.json"), []byte("{broken"), 0o600))

	s := New(dir)
	_, err := s.ListClasses()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse data file")
}
