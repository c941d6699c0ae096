package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-board.com/task-board/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue a bearer token for a configured administrator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		admins, err := loadCredentials(context.Background(), cfg)
		if err != nil {
			return err
		}
		if !admins.IsAdmin(args[0]) {
			return fmt.Errorf("%s is not a configured administrator", args[0])
		}
		if cfg.UsesDefaultSecret() {
			logger.Warn("issuing a token signed with the public default secret")
		}

		tokens, err := auth.NewTokenService(cfg.JWTSecret)
		if err != nil {
			return err
		}
		token, err := tokens.Issue(args[0], time.Now())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
