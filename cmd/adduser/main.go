// Command adduser creates an account directly in the database, for seeding
// environments where signing up through the web app is not convenient.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/tripshare/tripshare/backend/internal/auth"
	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/repo"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// openUsersFunc connects to dsn and returns the user repository plus a
// function that releases the connection.
type openUsersFunc func(ctx context.Context, dsn string) (repo.UserRepo, func(), error)

func main() {
	_ = godotenv.Load()

	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, openPostgres)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, open openUsersFunc) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address")
	name := fs.String("name", "", "Display name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dsn := fs.String("db", os.Getenv("DATABASE_URL"), "Postgres connection string")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" || *name == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> -name <name> [-password <password>] [-db <dsn>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email, name")
	}
	if *dsn == "" {
		return fmt.Errorf("no database: set -db or DATABASE_URL")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	in := validate.RegisterInput{
		Email:    strings.TrimSpace(*email),
		Password: password,
		Name:     strings.TrimSpace(*name),
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	users, closeDB, err := open(ctx, *dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeDB()

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}

	user, err := users.Create(ctx, domain.User{Email: in.Email, PasswordHash: hash, Name: in.Name})
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("user %s already exists", in.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Email, user.ID)
	return nil
}

func openPostgres(ctx context.Context, dsn string) (repo.UserRepo, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo.NewUserRepo(pool), pool.Close, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
