package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmoreno/ventapos/internal/infrastructure/config"
	"github.com/nmoreno/ventapos/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ventapos-cli",
		Short: "VentaPOS CLI tool",
		Long:  `A command line interface for interacting with the VentaPOS API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the VentaPOS API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Balance commands
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance operations",
	}

	var fecha string
	diaCmd := &cobra.Command{
		Use:   "dia",
		Short: "Show the balance for one day",
		Run: func(cmd *cobra.Command, args []string) {
			fetchJSON("/api/ventas/balance/dia?fecha=" + fecha)
		},
	}
	diaCmd.Flags().StringVar(&fecha, "fecha", time.Now().UTC().Format("2006-01-02"), "Day to report (YYYY-MM-DD)")

	generalCmd := &cobra.Command{
		Use:   "general",
		Short: "Show the all-time balance",
		Run: func(cmd *cobra.Command, args []string) {
			fetchJSON("/api/ventas/balance/general")
		},
	}

	balanceCmd.AddCommand(diaCmd, generalCmd)
	rootCmd.AddCommand(balanceCmd)

	// Product commands
	productosCmd := &cobra.Command{
		Use:   "productos",
		Short: "List registered products",
		Run: func(cmd *cobra.Command, args []string) {
			fetchJSON("/api/productos")
		},
	}
	rootCmd.AddCommand(productosCmd)

	// Sale commands
	ventasCmd := &cobra.Command{
		Use:   "ventas",
		Short: "List registered sales",
		Run: func(cmd *cobra.Command, args []string) {
			fetchJSON("/api/ventas")
		},
	}
	rootCmd.AddCommand(ventasCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(false)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(true)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fetchJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}

func runMigrations(down bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if down {
		err = postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
	} else {
		err = postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	}
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations complete")
}
