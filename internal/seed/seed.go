package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seededDays = 60

// Users are the sample accounts created by Run.
var Users = []domain.User{
	{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Berlin", Modules: domain.AllModules()},
	{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York", Modules: domain.ModuleSet{Stress: true, Sleep: true}},
	{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo", Modules: domain.ModuleSet{Fungal: true, Weather: true, Sweating: true}},
}

var (
	baseFoods    = []string{"Brot", "Reis", "Kartoffeln", "Apfel", "Haferflocken", "Hähnchen", "Gurke"}
	triggerFoods = []string{"Milch", "Tomaten", "Nüsse"}
	nickelFoods  = []string{"Schokolade", "Soja", "Linsen"}
	weather      = []string{"dry", "humid", "cold", "hot", "rainy"}
)

// Run seeds the database with sample users and day entries. Safe to call
// multiple times: existing days are left untouched.
func Run(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	if log == nil {
		log = logger.NewNop()
	}
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(&domain.User{}, &domain.DayEntry{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	for _, user := range Users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range Users {
		n, err := seedEntriesForUser(db, user, rng)
		if err != nil {
			return err
		}
		log.Infow("seeded day entries", "user_id", user.ID, "created", n)
	}

	log.Infow("seed completed", "users", len(Users))
	return nil
}

func seedEntriesForUser(db *gorm.DB, user domain.User, rng *rand.Rand) (int, error) {
	today := user.Today(time.Now())
	entries := Generate(user.ID, today, seededDays, rng)

	created := 0
	for i := range entries {
		entry := entries[i]
		res := db.Where("user_id = ? AND entry_date = ?", entry.UserID, entry.Date).FirstOrCreate(&entry)
		if res.Error != nil {
			return created, fmt.Errorf("failed to create entry for %s: %w", domain.FormatDate(entry.Date), res.Error)
		}
		created += int(res.RowsAffected)
	}
	return created, nil
}

// Generate builds days of synthetic entries ending at today. Trigger foods,
// high stress and poor sleep raise the severity one or two days later, so the
// data produces visible patterns.
func Generate(userID uuid.UUID, today time.Time, days int, rng *rand.Rand) []domain.DayEntry {
	entries := make([]domain.DayEntry, days)
	pressure := make([]int, days+2)

	for i := range days {
		date := today.AddDate(0, 0, i-days+1)

		foods := pick(rng, baseFoods, 2+rng.Intn(3))
		if rng.Float32() < 0.25 {
			foods = append(foods, triggerFoods[rng.Intn(len(triggerFoods))])
			pressure[i+1+rng.Intn(2)] += 2
		}
		if rng.Float32() < 0.2 {
			foods = append(foods, nickelFoods[rng.Intn(len(nickelFoods))])
			pressure[i+1]++
		}

		stress := 1 + rng.Intn(5)
		if stress >= 4 {
			pressure[i+1]++
		}
		sleep := 1 + rng.Intn(5)
		if sleep <= 2 {
			pressure[i+1]++
		}
		fungal := i%20 >= 12 && i%20 < 16
		if fungal {
			pressure[i]++
		}

		w := weather[rng.Intn(len(weather))]
		sweating := w == "hot" && rng.Float32() < 0.6

		severity := min(domain.MaxRating, 1+rng.Intn(2)+pressure[i])

		entries[i] = domain.DayEntry{
			UserID:       userID,
			Date:         date,
			Severity:     &severity,
			Foods:        domain.NewStringSet(foods),
			StressLevel:  &stress,
			FungalActive: &fungal,
			SleepQuality: &sleep,
			Weather:      &w,
			Sweating:     &sweating,
		}
		if rng.Float32() < 0.1 {
			entries[i].ContactExposures = domain.StringSet{"Nickel"}
		} else {
			entries[i].ContactExposures = domain.StringSet{}
		}
	}
	return entries
}

func pick(rng *rand.Rand, from []string, n int) []string {
	idx := rng.Perm(len(from))
	out := make([]string, 0, n)
	for _, i := range idx[:min(n, len(from))] {
		out = append(out, from[i])
	}
	return out
}
