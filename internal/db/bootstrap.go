package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davemarr/asset-inventory/internal/models"
	"github.com/davemarr/asset-inventory/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// defaultAccounts are seeded on first run so the system is usable out of the box.
// There is no registration endpoint; these are the only accounts unless more are
// inserted out of band.
var defaultAccounts = []struct {
	Username string
	Email    string
	Password string
	Role     string
}{
	{"admin", "admin@assetmanagement.com", "admin123", models.RoleAdmin},
	{"technician", "tech@assetmanagement.com", "tech123", models.RoleTechnician},
}

// Bootstrap seeds a default account for each role that has no user yet.
// Safe to run on every boot.
func Bootstrap(ctx context.Context, users *repo.UserRepo) error {
	for _, acct := range defaultAccounts {
		n, err := users.CountByRole(ctx, acct.Role)
		if err != nil {
			return fmt.Errorf("bootstrap: count %s users: %w", acct.Role, err)
		}
		if n > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), 10)
		if err != nil {
			return fmt.Errorf("bootstrap: hash password: %w", err)
		}

		if _, err := users.Create(ctx, acct.Username, acct.Email, string(hash), acct.Role); err != nil {
			return fmt.Errorf("bootstrap: create %s: %w", acct.Username, err)
		}
		slog.Info("seeded default account", "username", acct.Username, "role", acct.Role)
	}
	return nil
}
