// Command seed fills a development database with demo accounts and worker
// profiles for each catalog category.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"urbanset/config"
	"urbanset/database"
	"urbanset/database/repository/store"
	"urbanset/models"
	"urbanset/services/catalog"

	"golang.org/x/crypto/bcrypt"
)

const workersPerCategory = 5

var cities = []string{"Delhi", "Pune", "Mumbai", "Bengaluru", "Jaipur"}

func main() {
	config.LoadConfig()
	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}
	database.InitDB()
	st := store.NewMongoStore()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := catalog.NewDefaultCatalogService(st.Catalog).Seed(ctx, catalog.DefaultCategories); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Every demo account shares one password.
	hashed, err := bcrypt.GenerateFromPassword([]byte("$Password1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for _, category := range catalog.DefaultCategories {
		for i := 1; i <= workersPerCategory; i++ {
			email := fmt.Sprintf("%s_worker_%d@example.com", category.Slug, i)
			user := &models.User{
				ID:           models.NewID(),
				Name:         fmt.Sprintf("%s Worker %d", category.Name, i),
				Email:        email,
				PasswordHash: string(hashed),
				Role:         models.RoleWorker,
			}
			if err := st.Users.Create(ctx, user); err != nil {
				log.Printf("skipping %s: %v", email, err)
				continue
			}

			city := cities[rng.Intn(len(cities))]
			now := time.Now().UTC()
			w := &models.Worker{
				ID:                models.NewID(),
				OwnerID:           user.ID,
				Name:              user.Name,
				Email:             email,
				Phone:             fmt.Sprintf("900000%04d", created+1),
				Skills:            []string{category.Name},
				SkillKeys:         []string{category.Slug},
				Experience:        rng.Intn(15),
				Price:             float64(200 + 50*rng.Intn(12)),
				Rating:            float64(30+rng.Intn(21)) / 10,
				ReviewCount:       rng.Intn(40),
				Location:          models.Location{City: city},
				Availability:      append([]string(nil), models.DefaultAvailability...),
				RegistrationState: models.RegistrationComplete,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := st.Workers.Create(ctx, w); err != nil {
				log.Printf("skipping worker %s: %v", email, err)
				continue
			}
			created++
		}
	}

	fmt.Printf("Seeded %d workers across %d categories\n", created, len(catalog.DefaultCategories))
	if err := database.CloseDB(context.Background()); err != nil {
		log.Printf("failed to close database: %v", err)
	}
}
