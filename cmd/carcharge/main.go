package main

import (
	"fmt"
	"os"

	"github.com/etoandroid/firda-carcharge/internal/api"
	"github.com/etoandroid/firda-carcharge/internal/config"
	"github.com/etoandroid/firda-carcharge/internal/keychain"
	"github.com/etoandroid/firda-carcharge/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "carcharge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	kc, err := keychain.New(cfg.KeychainType, cfg.KeychainPath)
	if err != nil {
		return fmt.Errorf("open keychain: %w", err)
	}
	defer kc.Close()

	client := api.New(cfg, kc)

	return newRootCmd(client, kc).Execute()
}

func newRootCmd(client *api.Client, kc keychain.Store) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "carcharge",
		Short:         "Command-line client for the Firda CarCharge backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var email, password string

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token in the keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := kc.Set(keychain.AccessTokenKey, res.AccessToken); err != nil {
				return fmt.Errorf("store access token: %w", err)
			}
			fmt.Printf("Logged in, token valid for %d seconds\n", res.ExpiresIn)
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Register(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Println("Account created")
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := client.AccountBalance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Balance: %s\n", balance.StringFixed(2))
			return nil
		},
	}

	chargersCmd := &cobra.Command{
		Use:   "chargers",
		Short: "List the chargers owned by the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			chargers, err := client.Chargers(cmd.Context())
			if err != nil {
				return err
			}
			if len(chargers) == 0 {
				fmt.Println("No chargers registered")
				return nil
			}
			for _, charger := range chargers {
				fmt.Printf("%s\t%s\n", charger.ID, charger.Name)
			}
			return nil
		},
	}

	startCmd := &cobra.Command{
		Use:   "start <charger-id>",
		Short: "Start a charging session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.StartCharging(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Charging started")
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop <charger-id>",
		Short: "Stop a charging session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := client.StopCharging(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (new balance: %s)\n", res.Message, res.NewBalance.StringFixed(2))
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <charger-id>",
		Short: "Show the live status of a charging session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := client.ChargingStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Energy delivered: %.3f kWh\n", status.EnergyKWh)
			fmt.Printf("Power draw:       %.2f kW\n", status.PowerUsage)
			fmt.Printf("Remaining:        %s\n", status.RemainingBalance.StringFixed(2))
			return nil
		},
	}

	topupCmd := &cobra.Command{
		Use:   "topup <amount>",
		Short: "Create a checkout session to top up the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			url, err := client.CreateCheckoutSession(cmd.Context(), amount)
			if err != nil {
				return err
			}
			fmt.Printf("Complete payment at: %s\n", url)
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kc.Delete(keychain.AccessTokenKey); err != nil {
				return fmt.Errorf("remove access token: %w", err)
			}
			fmt.Println("Logged out")
			return nil
		},
	}

	rootCmd.AddCommand(loginCmd, registerCmd, balanceCmd, chargersCmd,
		startCmd, stopCmd, statusCmd, topupCmd, logoutCmd)

	return rootCmd
}
