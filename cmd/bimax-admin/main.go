// Package main is the entry point for the Bimax Pro admin CLI.
// It manages the credential store without going through the HTTP server:
// hashing passwords for manual users.json edits, changing the stored
// password of an existing user, and adding new administrator accounts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/config"
	"github.com/bimax-pro/bimax-admin/internal/domain"
	"github.com/bimax-pro/bimax-admin/internal/pkg/crypto"
	"github.com/bimax-pro/bimax-admin/internal/repository/jsonfile"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "hash":
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: bimax-admin hash <password>")
			os.Exit(1)
		}
		runHash(os.Args[2])

	case "passwd":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, "Usage: bimax-admin passwd <username> <newpassword>")
			os.Exit(1)
		}
		runPasswd(os.Args[2], os.Args[3])

	case "useradd":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, "Usage: bimax-admin useradd <username> <password>")
			os.Exit(1)
		}
		runUserAdd(os.Args[2], os.Args[3])

	case "version":
		fmt.Println("Bimax Pro Admin CLI")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runHash prints a fresh digest for manual users.json edits.
func runHash(password string) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// runPasswd rewrites the stored hash of an existing user.
func runPasswd(username, newPassword string) {
	cfg := config.MustLoad("")
	ctx := context.Background()

	store := jsonfile.NewUserStore(cfg.Storage.UsersFile(), cfg.Auth.AdminPassword, zerolog.Nop())

	users := store.Load(ctx)
	found := false
	for i := range users {
		if users[i].Username != username {
			continue
		}
		hash, err := crypto.HashPassword(newPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		users[i].PasswordHash = hash
		found = true
		break
	}
	if !found {
		fmt.Fprintf(os.Stderr, "User %q not found in %s\n", username, cfg.Storage.UsersFile())
		os.Exit(1)
	}

	if err := store.Save(ctx, users); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save users file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Password for user %q updated\n", username)
}

// runUserAdd appends a new administrator account to the users file.
func runUserAdd(username, password string) {
	cfg := config.MustLoad("")
	ctx := context.Background()

	store := jsonfile.NewUserStore(cfg.Storage.UsersFile(), cfg.Auth.AdminPassword, zerolog.Nop())

	users := store.Load(ctx)
	for _, u := range users {
		if u.Username == username {
			fmt.Fprintf(os.Stderr, "User %q already exists in %s\n", username, cfg.Storage.UsersFile())
			os.Exit(1)
		}
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	users = append(users, domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})

	if err := store.Save(ctx, users); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save users file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("User %q created\n", username)
}

func printUsage() {
	fmt.Println(`Bimax Pro Admin CLI

Usage:
  bimax-admin <command> [arguments]

Commands:
  hash <password>                  Print a salt:hash digest for users.json
  passwd <username> <newpassword>  Change a user's password
  useradd <username> <password>    Add an administrator account
  version                          Print version information
  help                             Show this help message

The users file location comes from the same configuration as the server
(BIMAX_STORAGE_DATA_DIR, default "data").`)
}
