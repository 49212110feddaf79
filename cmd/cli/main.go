package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gobank/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

// bcryptGenerate is swapped out in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		accountsCmd(),
		depositCmd(),
		withdrawCmd(),
		transferCmd(),
		goldCmd(),
		dashboardCmd(),
		approveCmd(),
		hashPasswordCmd(),
		migrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	var fullName string

	cmd := &cobra.Command{
		Use:   "register <username> <email> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/auth/register", map[string]any{
				"username":  args[0],
				"email":     args[1],
				"password":  args[2],
				"full_name": fullName,
			})
		},
	}
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name")

	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and print an access token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/auth/login", map[string]any{
				"username": args[0],
				"password": args[1],
			})
		},
	}
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List your accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/accounts")
		},
	}
}

func depositCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit money into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/transactions/deposit", map[string]any{
				"account_id":  args[0],
				"amount":      args[1],
				"description": description,
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Transaction description")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "withdraw <account-id> <amount>",
		Short: "Withdraw money from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/transactions/withdraw", map[string]any{
				"account_id":  args[0],
				"amount":      args[1],
				"description": description,
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Transaction description")

	return cmd
}

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from-account-id> <to-account-number> <amount>",
		Short: "Transfer money to another account by account number",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/transactions/transfer", map[string]any{
				"from_account_id":   args[0],
				"to_account_number": args[1],
				"amount":            args[2],
			})
		},
	}
}

func goldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gold",
		Short: "Digital gold operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "holdings",
		Short: "Show your gold holding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/investments/digital-gold")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <amount>",
		Short: "Buy digital gold for the given amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/investments/digital-gold/buy", map[string]any{
				"amount": args[0],
			})
		},
	})

	return cmd
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the account overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/dashboard")
		},
	}
}

func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <transaction-id>",
		Short: "Approve a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/transactions/"+args[0]+"/approve", nil)
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding users directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hashed))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Database URL")
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Migrations directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, migrationsPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, migrationsPath)
		},
	})

	return cmd
}

func doGet(path string) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return err
	}

	return doRequest(req)
}

func doPost(path string, payload map[string]any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return doRequest(req)
}

func doRequest(req *http.Request) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, truncate(string(data), 2000))
		os.Exit(1)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		fmt.Println(string(data))
		return nil
	}
	printJSON(parsed)

	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
