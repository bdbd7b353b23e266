// Package store persists classes and students as a single JSON
// document under the data directory. It enforces the same rules the
// UI relies on: unique class names, one enrollment per username per
// class, and cascade deletion of a class's students.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/utils"
)

const defaultFilePerms = 0o600

// Sentinel errors callers can match with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateName    = errors.New("name already exists")
	ErrDuplicateStudent = errors.New("already enrolled in class")
)

// payload is the on-disk JSON shape.
type payload struct {
	NextClassID   int64            `json:"next_class_id"`
	NextStudentID int64            `json:"next_student_id"`
	Classes       []models.Class   `json:"classes"`
	Students      []models.Student `json:"students"`
}

// Store reads and writes the scv data file. Every operation loads the
// current document and mutations write it back, so concurrent scv
// processes see each other's changes on their next operation.
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a store backed by dataDir/scv.json.
func New(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, models.StoreFilename)}
}

// Path returns the location of the data file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (*payload, error) {
	// #nosec G304 -- path is constructed from the vetted data dir and a constant filename
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &payload{NextClassID: 1, NextStudentID: 1}, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", s.path, err)
	}
	if p.NextClassID < 1 {
		p.NextClassID = 1
	}
	if p.NextStudentID < 1 {
		p.NextStudentID = 1
	}
	return &p, nil
}

func (s *Store) save(p *payload) error {
	if err := os.MkdirAll(filepath.Dir(s.path), utils.DefaultDirPerms); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	if err := os.WriteFile(s.path, data, defaultFilePerms); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// CreateClass adds a class with the given name.
func (s *Store) CreateClass(name string) (*models.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("class name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range p.Classes {
		if c.Name == name {
			return nil, fmt.Errorf("class %q: %w", name, ErrDuplicateName)
		}
	}

	class := models.Class{
		ID:        p.NextClassID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	p.NextClassID++
	p.Classes = append(p.Classes, class)

	if err := s.save(p); err != nil {
		return nil, err
	}
	return &class, nil
}

// ListClasses returns all classes ordered by name.
func (s *Store) ListClasses() ([]models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return nil, err
	}
	classes := append([]models.Class(nil), p.Classes...)
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

// GetClass returns the class with the given id.
func (s *Store) GetClass(id int64) (*models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range p.Classes {
		if c.ID == id {
			class := c
			return &class, nil
		}
	}
	return nil, fmt.Errorf("class %d: %w", id, ErrNotFound)
}

// DeleteClass removes a class and all of its students.
func (s *Store) DeleteClass(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return err
	}

	classes := p.Classes[:0]
	found := false
	for _, c := range p.Classes {
		if c.ID == id {
			found = true
			continue
		}
		classes = append(classes, c)
	}
	if !found {
		return fmt.Errorf("class %d: %w", id, ErrNotFound)
	}
	p.Classes = classes

	students := p.Students[:0]
	for _, st := range p.Students {
		if st.ClassID == id {
			continue
		}
		students = append(students, st)
	}
	p.Students = students

	return s.save(p)
}

// AddStudent enrolls a username in a class. The GitHub username
// defaults to the plain username.
func (s *Store) AddStudent(classID int64, username string) (*models.Student, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return nil, err
	}

	classExists := false
	for _, c := range p.Classes {
		if c.ID == classID {
			classExists = true
			break
		}
	}
	if !classExists {
		return nil, fmt.Errorf("class %d: %w", classID, ErrNotFound)
	}

	for _, st := range p.Students {
		if st.ClassID == classID && st.Username == username {
			return nil, fmt.Errorf("student %q: %w", username, ErrDuplicateStudent)
		}
	}

	student := models.Student{
		ID:             p.NextStudentID,
		ClassID:        classID,
		Username:       username,
		GitHubUsername: username,
		CreatedAt:      time.Now().UTC(),
	}
	p.NextStudentID++
	p.Students = append(p.Students, student)

	if err := s.save(p); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListStudents returns a class's students ordered by username.
func (s *Store) ListStudents(classID int64) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return nil, err
	}
	var students []models.Student
	for _, st := range p.Students {
		if st.ClassID == classID {
			students = append(students, st)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Username < students[j].Username })
	return students, nil
}

// DeleteStudent removes a student by id.
func (s *Store) DeleteStudent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return err
	}

	students := p.Students[:0]
	found := false
	for _, st := range p.Students {
		if st.ID == id {
			found = true
			continue
		}
		students = append(students, st)
	}
	if !found {
		return fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	p.Students = students

	return s.save(p)
}

// CountStudents returns the number of students enrolled in a class.
func (s *Store) CountStudents(classID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, st := range p.Students {
		if st.ClassID == classID {
			count++
		}
	}
	return count, nil
}
