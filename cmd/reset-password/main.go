package main

import (
	"flag"
	"fmt"
	"os"

	"go-inventory-sheets/internal/config"
	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/repository"
	"go-inventory-sheets/internal/store"
	"go-inventory-sheets/pkg/database"
	"go-inventory-sheets/pkg/logger"

	"go.uber.org/zap"
)

// reset-password sets a local user's password, e.g. to recover the master account.
// Users synced from a sheet are overwritten by the next sync; change those in the sheet.
func main() {
	username := flag.String("user", "admin", "username to reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	// 2. Setup Database
	db := database.ConnectDB(cfg.Database)
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	users := store.NewUserStore(repository.NewKVRepo(db), cfg.Sheets.UsersConfigured(), log)

	// 3. Find user
	user, ok := users.GetByUsername(*username)
	if !ok {
		log.Fatal("user not found", zap.String("username", *username))
	}

	// 4. Set the new password, hashed when the server hashes
	var tmp model.User
	if err := tmp.SetPassword(*password, cfg.Auth.HashPasswords); err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}

	// 5. Update
	if _, ok := users.Update(user.ID, store.UserUpdate{Password: &tmp.Password}); !ok {
		log.Fatal("failed to update password", zap.String("username", *username))
	}

	log.Info("password reset", zap.String("username", user.Username), zap.Bool("hashed", cfg.Auth.HashPasswords))
}
