// Package seed holds the starter catalog loaded by the seed command and
// served directly by the in-memory backend.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const defaultPassingScore = 70

type Catalog struct {
	Courses []Course `yaml:"courses"`
	// PDFs not attached to any course.
	PDFs []PDF `yaml:"pdfs"`
}

type Course struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Level       string `yaml:"level"`
	Duration    string `yaml:"duration"`
	Icon        string `yaml:"icon"`
	Image       string `yaml:"image"`
	PDFs        []PDF  `yaml:"pdfs"`
	Quizzes     []Quiz `yaml:"quizzes"`
}

type PDF struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Filename    string `yaml:"filename"`
	FilePath    string `yaml:"file_path"`
}

type Quiz struct {
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	TimeLimit    int        `yaml:"time_limit"`
	PassingScore int        `yaml:"passing_score"`
	Questions    []Question `yaml:"questions"`
}

type Question struct {
	Text    string   `yaml:"text"`
	Choices []Choice `yaml:"choices"`
}

type Choice struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// UnmarshalYAML keeps an explicit passing_score of 0 apart from an omitted one.
func (q *Quiz) UnmarshalYAML(value *yaml.Node) error {
	type plain Quiz
	var body plain
	if err := value.Decode(&body); err != nil {
		return err
	}
	var score struct {
		PassingScore *int `yaml:"passing_score"`
	}
	if err := value.Decode(&score); err != nil {
		return err
	}
	*q = Quiz(body)
	q.PassingScore = defaultPassingScore
	if score.PassingScore != nil {
		q.PassingScore = *score.PassingScore
	}
	return nil
}

// Default returns the embedded starter catalog.
func Default() (Catalog, error) {
	return parse(defaultCatalog)
}

// Load reads a catalog from a YAML file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return parse(data)
}

func parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range c.Courses {
		for j := range c.Courses[i].Quizzes {
			q := &c.Courses[i].Quizzes[j]
			applyQuizDefaults(q)
			if q.PassingScore < 0 || q.PassingScore > 100 {
				return Catalog{}, fmt.Errorf("quiz %q: passing_score %d outside 0-100", q.Title, q.PassingScore)
			}
		}
		for j := range c.Courses[i].PDFs {
			applyPDFDefaults(&c.Courses[i].PDFs[j])
		}
	}
	for i := range c.PDFs {
		applyPDFDefaults(&c.PDFs[i])
	}
	return c, nil
}

func applyQuizDefaults(q *Quiz) {
	if q.TimeLimit == 0 {
		q.TimeLimit = 30
	}
}

func applyPDFDefaults(p *PDF) {
	if p.FilePath == "" {
		p.FilePath = p.Filename
	}
}
