package data

import (
	_ "embed"
)

// EducationYAML is the education taxonomy
//
//go:embed education.yaml
var EducationYAML []byte

// SampleJobsYAML holds the postings loaded by the seed command
//
//go:embed sample_jobs.yaml
var SampleJobsYAML []byte
