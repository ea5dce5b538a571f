package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

func main() {
	var (
		emailFlag    string
		passwordFlag string
		roleFlag     string
	)

	flag.StringVar(&emailFlag, "email", "", "admin account email")
	flag.StringVar(&passwordFlag, "password", "", "admin account password (min 8 characters)")
	flag.StringVar(&roleFlag, "role", "admin", "role to assign")
	flag.Parse()

	_ = godotenv.Load()

	if strings.TrimSpace(os.Getenv("APP_ENV")) == "production" {
		exitWithError(errors.New("seedadmin refuses to run with APP_ENV=production"))
	}

	email := strings.TrimSpace(strings.ToLower(emailFlag))
	if email == "" {
		email = strings.TrimSpace(strings.ToLower(os.Getenv("SEED_ADMIN_EMAIL")))
	}
	password := passwordFlag
	if password == "" {
		password = os.Getenv("SEED_ADMIN_PASSWORD")
	}

	if email == "" {
		exitWithError(errors.New("-email (or SEED_ADMIN_EMAIL) is required"))
	}
	if len(password) < 8 {
		exitWithError(errors.New("password must be at least 8 characters"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "seedadmin").Logger()
	if err := infra.Migrate(dbURL, logger); err != nil {
		exitWithError(fmt.Errorf("failed to run migrations: %w", err))
	}

	runner := infra.NewSQLRunner(pool, logger)
	users := repo.NewAdminUserRepository(runner)

	if existing, err := users.GetByEmail(ctx, email); err == nil {
		fmt.Printf("Admin %s already exists (id %s), nothing to do\n", existing.Email, existing.ID)
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		exitWithError(fmt.Errorf("failed to check existing admin: %w", err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		exitWithError(fmt.Errorf("failed to hash password: %w", err))
	}

	created, err := users.Create(ctx, &domain.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         roleFlag,
	})
	if err != nil {
		exitWithError(fmt.Errorf("failed to create admin: %w", err))
	}

	fmt.Printf("Admin %s created (id %s, role %s)\n", created.Email, created.ID, created.Role)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
