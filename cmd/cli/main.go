package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nazeru/contractforge-go/pkg/config"
)

func main() {
	var (
		baseURL string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "ContractForge terminal client",
		Long:  "Browse the catalog and preview checkouts through the orchestrator. Without a subcommand an interactive picker opens.",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := newAPI(baseURL, timeout)
			_, err := tea.NewProgram(initialModel(api)).Run()
			return err
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", config.Getenv("ORCHESTRATOR_BASE_URL", "http://localhost:8080"), "orchestrator base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")

	rootCmd.AddCommand(previewCmd(&baseURL, &timeout))
	rootCmd.AddCommand(productsCmd(&baseURL, &timeout))
	rootCmd.AddCommand(usersCmd(&baseURL, &timeout))
	rootCmd.AddCommand(benchCmd(&baseURL, &timeout))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func previewCmd(baseURL *string, timeout *time.Duration) *cobra.Command {
	var productID, userID string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Price a product for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newAPI(*baseURL, *timeout).Preview(cmd.Context(), productID, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}
	cmd.Flags().StringVarP(&productID, "product", "p", "", "product id")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func productsCmd(baseURL *string, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List products through the orchestrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := newAPI(*baseURL, *timeout).Products(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-24s stock=%-4d price=%.2f\n", p.ID, p.Name, p.Stock, p.Price)
			}
			return nil
		},
	}
}

func usersCmd(baseURL *string, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users through the orchestrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := newAPI(*baseURL, *timeout).Users(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-24s %s\n", u.ID, u.Name, u.LoyaltyTier)
			}
			return nil
		},
	}
}

func benchCmd(baseURL *string, timeout *time.Duration) *cobra.Command {
	var (
		productID, userID string
		duration          time.Duration
		vus               int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Hammer /checkout/preview with concurrent clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if vus <= 0 {
				return fmt.Errorf("--vus must be positive")
			}
			api := newAPI(*baseURL, *timeout)
			res := runBenchmark(cmd.Context(), api, productID, userID, duration, vus)
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&productID, "product", "p", "p-100", "product id")
	cmd.Flags().StringVarP(&userID, "user", "u", "u-1", "user id")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 5*time.Second, "how long to run")
	cmd.Flags().IntVar(&vus, "vus", 5, "concurrent virtual users")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newAPI(baseURL string, timeout time.Duration) *api {
	return &api{base: baseURL, hc: &http.Client{Timeout: timeout}}
}
