package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	config "task-board.com/task-board/internal/configs"
	repository "task-board.com/task-board/internal/repositories"
	"task-board.com/task-board/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the credential and task snapshots",
	Long:  "Validates the administrator document and the task snapshot of the configured store against their schemas without starting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()

		out := cmd.OutOrStdout()
		failed := false
		check := func(label, source string, read func(context.Context) ([]byte, error), validate func([]byte) error, optional bool) {
			b, err := read(ctx)
			switch {
			case err != nil && optional && errors.Is(err, repository.ErrDocumentNotFound):
				fmt.Fprintf(out, "%s: %s does not exist yet (starts empty)\n", label, source)
				return
			case err != nil:
				err = fmt.Errorf("read %s: %w", source, err)
			default:
				err = validate(b)
			}
			if err != nil {
				failed = true
				fmt.Fprintf(out, "%s: %s is invalid: %v\n", label, source, err)
				return
			}
			fmt.Fprintf(out, "%s: %s ok\n", label, source)
		}

		users, err := repository.NewFileDocumentStore(cfg.UsersFilePath)
		if err != nil {
			return err
		}
		check("administrators", cfg.UsersFilePath, users.Read, schema.ValidateAdmins, false)

		// Only reads happen here, so no writer lock is needed.
		taskCfg := cfg
		taskCfg.SerializeMutations = false
		backend, err := openTaskBackend(ctx, taskCfg)
		if err != nil {
			return err
		}
		defer backend.close()
		check("tasks", taskSource(cfg), backend.store.Read, schema.ValidateTasks, true)

		if failed {
			return fmt.Errorf("snapshot validation failed")
		}
		return nil
	},
}

func taskSource(cfg config.Config) string {
	if cfg.TaskStoreDriver == config.DriverFile {
		return cfg.TodosFilePath
	}
	return fmt.Sprintf("%s snapshot %q", cfg.TaskStoreDriver, cfg.TaskSnapshotKey)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
