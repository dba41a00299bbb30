// Command seed populates a development database with demo students and posts.
package main

import (
	"flag"
	"log"

	"squadsync/internal/config"
	"squadsync/internal/database"
	"squadsync/internal/seed"
)

func main() {
	students := flag.Int("students", 25, "number of demo students to create")
	postsPerUser := flag.Int("posts", 2, "posts per student")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.Students = *students
	opts.PostsPerUser = *postsPerUser
	opts.EmailDomain = cfg.StudentEmailDomain

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
