// Package main is the admin CLI for the link shortener API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sp3dr4/linkshortener/internal/client"
)

var rootCmd = &cobra.Command{
	Use:           "linkctl",
	Short:         "Manage short links on a running link shortener",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var shortenCmd = &cobra.Command{
	Use:   "shorten <url>",
	Short: "Create a short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("code")
		return commands(cmd).Shorten(cmd.Context(), args[0], code)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <short-code>",
	Short: "Show a short link and its click count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands(cmd).Get(cmd.Context(), args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all short links, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return commands(cmd).List(cmd.Context())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show link and click totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return commands(cmd).Stats(cmd.Context())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <short-code>",
	Short: "Delete a short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands(cmd).Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8080", "Server URL")
	shortenCmd.Flags().StringP("code", "c", "", "Custom short code (3-10 alphanumeric characters)")

	rootCmd.AddCommand(shortenCmd, getCmd, listCmd, statsCmd, deleteCmd)
}

func commands(cmd *cobra.Command) *client.Commands {
	serverURL, _ := cmd.Flags().GetString("server-url")
	return client.NewCommands(client.NewClient(serverURL), cmd.OutOrStdout())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
