// main.go
//
// A job board backend for candidates, companies and their applications
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jobboard.
// jobboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jobboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jobboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/localnerve/jobboard/data"
	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/database"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/validation"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Jobs []services.JobInput `yaml:"jobs"`
}

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var jobsFilename string
	flag.StringVar(&jobsFilename, "jobs", "", "path to a jobs YAML file, defaults to the built in sample")
	flag.Parse()

	usage := `
Load sample job postings into the jobboard database as administrative postings.
Postings whose title and company already exist are skipped.

Usage:

seed [-h] [-f ENV_FILE_PATH] [-jobs JOBS_YAML_PATH]
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	doc := data.SampleJobsYAML
	if jobsFilename != "" {
		var err error
		if doc, err = os.ReadFile(jobsFilename); err != nil {
			log.Fatalf("Failed to read %s: %v", jobsFilename, err)
		}
	}

	var seed seedFile
	if err := yaml.Unmarshal(doc, &seed); err != nil {
		log.Fatalf("Failed to parse jobs: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	var created, skipped int
	for i := range seed.Jobs {
		in := &seed.Jobs[i]
		if err := validation.Struct(in); err != nil {
			log.Fatalf("Job %d (%s) is invalid: %v", i, in.Title, err)
		}

		var count int64
		if err := db.WithContext(ctx).Model(&models.Job{}).
			Where("title = ? AND company = ?", in.Title, in.Company).
			Count(&count).Error; err != nil {
			log.Fatalf("Failed to check job %s: %v", in.Title, err)
		}
		if count > 0 {
			skipped++
			continue
		}

		if _, err := services.CreateJob(ctx, db, nil, in); err != nil {
			log.Fatalf("Failed to create job %s: %v", in.Title, err)
		}
		created++
	}

	log.Printf("Seeded %d jobs, skipped %d existing", created, skipped)
}
