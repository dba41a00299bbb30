// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"squadsync/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data gets generated.
type Options struct {
	Students      int
	PostsPerUser  int
	EmailDomain   string
	DemoPassword  string
	FoundFraction float64
	MaxDaysBack   int
}

// DefaultOptions returns seeding defaults for a local development database.
func DefaultOptions() Options {
	return Options{
		Students:      25,
		PostsPerUser:  2,
		EmailDomain:   "stu.pes.edu",
		DemoPassword:  "squadsync-demo",
		FoundFraction: 0.2,
		MaxDaysBack:   60,
	}
}

var eventNames = []string{
	"Hackathon",
	"CTF Night",
	"Robotics Challenge",
	"Designathon",
	"Case Study Competition",
	"Game Jam",
	"ML Sprint",
	"Open Source Weekend",
}

var skillPool = []string{
	"Go", "Python", "React", "Figma", "SQL", "Docker",
	"Machine Learning", "UI Design", "Public Speaking", "Embedded C",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateStudent persists a demo student with a valid SRN and student email.
func (f *Factory) CreateStudent(i int) (*models.User, error) {
	name := gofakeit.Name()
	local := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + fmt.Sprintf("%03d", i)
	srn := fmt.Sprintf("PES1UG23CS%03d", i)

	hash, err := bcrypt.GenerateFromPassword([]byte(f.opts.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	skills := make([]string, 0, 3)
	for _, s := range f.rng.Perm(len(skillPool))[:3] {
		skills = append(skills, skillPool[s])
	}

	user := &models.User{
		Name:         name,
		SRN:          srn,
		Email:        fmt.Sprintf("%s@%s", local, f.opts.EmailDomain),
		PasswordHash: string(hash),
		Bio:          gofakeit.Sentence(8),
		Skills:       skills,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a demo post for the given author with a realistic
// created_at spread.
func (f *Factory) CreatePost(author *models.User) (*models.Post, error) {
	status := models.PostStatusActive
	if f.rng.Float64() < f.opts.FoundFraction {
		status = models.PostStatusFound
	}

	eventDate := time.Now().AddDate(0, 0, f.rng.Intn(45)+7)
	post := &models.Post{
		AuthorID:    author.ID,
		EventName:   eventNames[f.rng.Intn(len(eventNames))],
		EventDate:   &eventDate,
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Status:      status,
	}

	maxDays := f.opts.MaxDaysBack
	if maxDays <= 0 {
		maxDays = 60
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour)

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Run populates the database with demo students and posts.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	for i := 1; i <= opts.Students; i++ {
		user, err := f.CreateStudent(i)
		if err != nil {
			return fmt.Errorf("seed student %d: %w", i, err)
		}
		for j := 0; j < opts.PostsPerUser; j++ {
			if _, err := f.CreatePost(user); err != nil {
				return fmt.Errorf("seed post for student %d: %w", i, err)
			}
		}
	}

	log.Printf("Seeded %d students with %d posts each", opts.Students, opts.PostsPerUser)
	return nil
}
