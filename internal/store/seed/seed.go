package seed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
)

// Seed files are a YAML sequence of entries. JSON arrays parse too, so a
// todos.json written by older versions of tada still loads (its "done" flag
// maps to the complete priority). Seeds are read once at startup; nothing is
// ever written back.

type entry struct {
	Title    string `yaml:"title"`
	Body     string `yaml:"body"`
	Priority string `yaml:"priority"`
	Category string `yaml:"category"`
	Done     bool   `yaml:"done"`
}

// LegacyFile is the data file older tada versions kept in the working
// directory.
const LegacyFile = "todos.json"

// Discover returns the path of LegacyFile in the working directory, or ""
// when there is none.
func Discover() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	p := filepath.Join(wd, LegacyFile)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// Load reads the seed file at path. A missing file yields no todos.
func Load(path string) ([]model.Todo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Parse(b)
}

// Parse decodes seed entries from b.
func Parse(b []byte) ([]model.Todo, error) {
	var entries []entry
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	out := make([]model.Todo, 0, len(entries))
	for i, e := range entries {
		td, err := e.todo()
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		out = append(out, td)
	}
	return out, nil
}

func (e entry) todo() (model.Todo, error) {
	if strings.TrimSpace(e.Title) == "" {
		return model.Todo{}, errors.New("empty title")
	}
	p := model.DefaultPriority
	if e.Priority != "" {
		var err error
		if p, err = model.ParsePriority(e.Priority); err != nil {
			return model.Todo{}, err
		}
	}
	if e.Done {
		p = model.PriorityComplete
	}
	c := model.DefaultCategory
	if e.Category != "" {
		var err error
		if c, err = model.ParseCategory(e.Category); err != nil {
			return model.Todo{}, err
		}
	}
	return model.NewTodo(e.Title, e.Body, p, c), nil
}

// Default is the sample list shown when no seed file is configured.
func Default() []model.Todo {
	return []model.Todo{
		model.NewTodo("Water the plants", "Balcony and kitchen", model.PriorityLow, model.CategoryLife),
		model.NewTodo("Book dentist appointment", "", model.PriorityHigh, model.CategoryLife),
		model.NewTodo("Write weekly report", "Include the release notes", model.PriorityMedium, model.CategoryWork),
		model.NewTodo("Review open pull requests", "", model.PriorityHigh, model.CategoryWork),
	}
}
