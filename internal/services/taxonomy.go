package services

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/localnerve/jobboard/data"
	"github.com/localnerve/jobboard/internal/types"
	"gopkg.in/yaml.v3"
)

// Taxonomy is the static education hierarchy: level, course, specialization, domain
type Taxonomy struct {
	EducationLevels         []string            `yaml:"educationLevels" json:"educationLevels"`
	CoursesByLevel          map[string][]string `yaml:"coursesByLevel" json:"coursesByLevel"`
	SpecializationsByCourse map[string][]string `yaml:"specializationsByCourse" json:"specializationsByCourse"`
	DomainsBySpecialization map[string][]string `yaml:"domainsBySpecialization" json:"domainsBySpecialization"`
}

var (
	taxonomy     *Taxonomy
	taxonomyErr  error
	taxonomyOnce sync.Once
)

// ParseTaxonomy decodes a taxonomy document
func ParseTaxonomy(doc []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(doc, &t); err != nil {
		return nil, fmt.Errorf("failed to parse education taxonomy: %w", err)
	}
	if len(t.EducationLevels) == 0 {
		return nil, fmt.Errorf("education taxonomy has no levels")
	}
	return &t, nil
}

// LoadTaxonomy returns the embedded taxonomy, parsed once
func LoadTaxonomy() (*Taxonomy, error) {
	taxonomyOnce.Do(func() {
		taxonomy, taxonomyErr = ParseTaxonomy(data.EducationYAML)
	})
	return taxonomy, taxonomyErr
}

func lookup(table map[string][]string, key, name string) ([]string, error) {
	if key == "" {
		return nil, types.NewError(http.StatusBadRequest, types.CodeValidation, name+" is required")
	}
	values, ok := table[key]
	if !ok {
		return nil, types.NewError(http.StatusNotFound, types.CodeNotFound, name+" not found")
	}
	return values, nil
}

// Courses lists the courses offered at an education level
func (t *Taxonomy) Courses(level string) ([]string, error) {
	return lookup(t.CoursesByLevel, level, "Education level")
}

// Specializations lists the specializations of a course
func (t *Taxonomy) Specializations(course string) ([]string, error) {
	return lookup(t.SpecializationsByCourse, course, "Course")
}

// Domains lists the job domains of a specialization
func (t *Taxonomy) Domains(specialization string) ([]string, error) {
	return lookup(t.DomainsBySpecialization, specialization, "Specialization")
}
