// Command seed loads demo branches, users, and reviews into the database
// through the same services the API uses, so sentiments and rollups stay
// consistent with live traffic.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aryansawant3579-cell/review-app/internal/access"
	"github.com/aryansawant3579-cell/review-app/internal/auth"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/repository"
	"github.com/aryansawant3579-cell/review-app/internal/review"
	"github.com/aryansawant3579-cell/review-app/internal/store"
)

var categories = []string{"food", "service", "ambience"}

var positivePhrases = []string{
	"Amazing experience, the food was excellent.",
	"Great service and a wonderful atmosphere.",
	"Loved the ambience, everything was perfect.",
	"Fantastic food, highly recommended.",
}

var neutralPhrases = []string{
	"Decent overall, nothing special.",
	"Average experience, could be better.",
	"Okay visit, the menu was limited.",
}

var negativePhrases = []string{
	"Very disappointing, poor service.",
	"Bad experience, the food was terrible.",
	"Awful wait times, would not recommend.",
}

func main() {
	branches := flag.Int("branches", 5, "number of demo branches")
	perBranch := flag.Int("reviews", 40, "number of reviews per branch")
	flag.Parse()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags)
	ctx := context.Background()

	st, err := store.New(ctx, dbURL, store.Options{Logger: logger})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	repo := repository.New(st)
	resolver := access.NewResolver(repo.Branches)
	reviews := review.NewService(repo, resolver, logger)

	if err := seed(ctx, repo, reviews, logger, *branches, *perBranch); err != nil {
		log.Fatalf("seed: %v", err)
	}

	logger.Println("seed complete")
	logger.Println("login as admin@example.com / password123")
}

func seed(ctx context.Context, repo *repository.Repository, reviews *review.Service, logger *log.Logger, branchCount, perBranch int) error {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	admin, err := repo.Users.Create(ctx, auth.UserCreateParams{
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		FullName:     "Demo Admin",
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logger.Printf("created admin %s", admin.Email)

	manager, err := repo.Users.Create(ctx, auth.UserCreateParams{
		Email:        "manager@example.com",
		PasswordHash: string(hash),
		FullName:     "Demo Manager",
		Role:         domain.RoleManager,
	})
	if err != nil {
		return fmt.Errorf("create manager: %w", err)
	}

	for i := 0; i < branchCount; i++ {
		params := repository.BranchCreateParams{
			Name:     fmt.Sprintf("Branch %d", i+1),
			Location: fmt.Sprintf("District %d", i+1),
			Code:     fmt.Sprintf("BR%03d", i+1),
		}
		// The demo manager runs the first branch.
		if i == 0 {
			params.ManagerID = &manager.ID
		}
		branch, err := repo.Branches.Create(ctx, params)
		if err != nil {
			return fmt.Errorf("create branch %d: %w", i+1, err)
		}

		for j := 0; j < perBranch; j++ {
			rating := 1 + rnd.Intn(5)
			category := categories[rnd.Intn(len(categories))]
			content := phraseFor(rnd, rating)
			name := fmt.Sprintf("Customer %d", rnd.Intn(1000))

			_, err := reviews.Create(ctx, review.CreateParams{
				BranchID:     branch.ID,
				Rating:       rating,
				Content:      content,
				Source:       "seed",
				Category:     &category,
				CustomerName: &name,
			})
			if err != nil {
				return fmt.Errorf("create review for %s: %w", branch.Name, err)
			}
		}
		logger.Printf("seeded %s with %d reviews", branch.Name, perBranch)
	}
	return nil
}

func phraseFor(rnd *rand.Rand, rating int) string {
	switch {
	case rating >= 4:
		return positivePhrases[rnd.Intn(len(positivePhrases))]
	case rating <= 2:
		return negativePhrases[rnd.Intn(len(negativePhrases))]
	default:
		return neutralPhrases[rnd.Intn(len(neutralPhrases))]
	}
}
