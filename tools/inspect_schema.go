//go:build ignore

// Prints the schema GORM generates for the jobboard models.
//
//	go run tools/inspect_schema.go [-indexes]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/localnerve/jobboard/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sqliteObject struct {
	Type string
	Name string
	SQL  string
}

func main() {
	withIndexes := flag.Bool("indexes", false, "Print index definitions as well")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open("file::memory:"), database.GormConfig(logger.Silent))
	if err != nil {
		log.Fatal(err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	kinds := []string{"table"}
	if *withIndexes {
		kinds = append(kinds, "index")
	}

	var objects []sqliteObject
	err = db.Raw(
		"SELECT type, name, sql FROM sqlite_master WHERE type IN ? AND sql IS NOT NULL AND name NOT LIKE 'sqlite_%' ORDER BY tbl_name, type DESC, name",
		kinds,
	).Scan(&objects).Error
	if err != nil {
		log.Fatal(err)
	}

	for _, o := range objects {
		fmt.Printf("\n=== %s: %s ===\n%s\n", o.Type, o.Name, o.SQL)
	}
}
