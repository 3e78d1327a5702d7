// Package main is the entry point for the BlogAPI admin CLI.
// It provides user management commands that bypass the HTTP API, for
// bootstrapping the first admin account and operational fixes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/config"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository/postgres"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository/sqlite"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
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

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("BlogAPI Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user subcommand required: create, list, promote, demote, activate, deactivate")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, health, err := setup(ctx)
	if err != nil {
		return err
	}
	defer health.Close()

	switch args[0] {
	case "create":
		return userCreate(ctx, users, args[1:])
	case "list":
		return userList(ctx, users)
	case "promote":
		return userSetRole(ctx, users, args[1:], domain.RoleAdmin)
	case "demote":
		return userSetRole(ctx, users, args[1:], domain.RoleUser)
	case "activate":
		return userSetActive(ctx, users, args[1:], true)
	case "deactivate":
		return userSetActive(ctx, users, args[1:], false)
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func userCreate(ctx context.Context, users *service.UserService, args []string) error {
	fs := flag.NewFlagSet("user create", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	email := fs.String("email", "", "email (required)")
	password := fs.String("password", "", "password (required)")
	name := fs.String("name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	admin := fs.Bool("admin", false, "create as admin")
	_ = fs.Parse(args)

	role := domain.RoleUser
	if *admin {
		role = domain.RoleAdmin
	}

	out, err := users.Create(ctx, service.CreateUserInput{
		Username: *username,
		Email:    *email,
		Password: *password,
		Name:     *name,
		LastName: *lastName,
		Role:     role,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created user %d (%s, role %s)\n", out.User.ID, out.User.Username, out.User.Role)
	return nil
}

func userList(ctx context.Context, users *service.UserService) error {
	out, err := users.List(ctx, service.ListUsersInput{Limit: 100})
	if err != nil {
		return err
	}

	fmt.Printf("%-6s %-24s %-32s %-8s %-8s\n", "ID", "USERNAME", "EMAIL", "ROLE", "ACTIVE")
	for _, u := range out.Users {
		fmt.Printf("%-6d %-24s %-32s %-8s %-8t\n", u.ID, u.Username, u.Email, u.Role, u.IsActive)
	}
	fmt.Printf("\nTotal: %d\n", out.TotalCount)
	return nil
}

func userSetRole(ctx context.Context, users *service.UserService, args []string, role domain.Role) error {
	id, err := parseUserID(args)
	if err != nil {
		return err
	}

	if err := users.SetRole(ctx, id, role); err != nil {
		return err
	}

	fmt.Printf("User %d role set to %s\n", id, role)
	return nil
}

func userSetActive(ctx context.Context, users *service.UserService, args []string, active bool) error {
	id, err := parseUserID(args)
	if err != nil {
		return err
	}

	// The CLI operates with full admin rights.
	admin := domain.Actor{Role: domain.RoleAdmin}
	if err := users.SetActive(ctx, admin, id, active); err != nil {
		return err
	}

	fmt.Printf("User %d active set to %t\n", id, active)
	return nil
}

func parseUserID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("user id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user id: %s", args[0])
	}
	return id, nil
}

// setup loads config, opens the database and wires the user service.
func setup(ctx context.Context) (*service.UserService, repository.DatabaseHealth, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("BLOGAPI_CONFIG"))
	if err != nil {
		return nil, nil, err
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	var repos *repository.Repositories
	var health repository.DatabaseHealth

	if cfg.Database.Driver == "postgres" {
		db, err := postgres.NewDB(ctx, postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		repos, health = postgres.NewRepositories(db), db
	} else {
		db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), logger)
		if err != nil {
			return nil, nil, err
		}
		repos, health = sqlite.NewRepositories(db), db
	}

	users := service.NewUserService(repos.User, repos.Tx, service.OwnerOrAdminPolicy{}, logger)
	return users, health, nil
}

func printUsage() {
	fmt.Println(`BlogAPI Admin CLI

Usage:
  blogapi-admin <command> [arguments]

Commands:
  user create -username <u> -email <e> -password <p> [-name <n>] [-last-name <l>] [-admin]
  user list
  user promote <id>      Grant admin role
  user demote <id>       Revoke admin role
  user activate <id>     Reactivate a user account
  user deactivate <id>   Deactivate a user account
  version                Show version information
  help                   Show this help

Configuration is read from the BLOGAPI_CONFIG file path, environment
variables (BLOGAPI_ prefix) and an optional .env file.`)
}
