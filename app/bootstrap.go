// app/bootstrap.go
package app

import (
	"context"
	"log"

	"storekeeper/db"
	"storekeeper/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin seeds an admin account from ADMIN_USERNAME /
// ADMIN_PASSWORD when the user table is empty, so a fresh deployment
// can be logged into at all.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}
	n, err := repo.CountUsers(ctx)
	if err != nil {
		log.Printf("bootstrap: count users: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap: hash password: %v", err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUsername,
		DisplayName:  cfg.AdminUsername,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap: create admin: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] Created first admin account %q", cfg.AdminUsername)
}
