package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"task-board.com/task-board/internal/auth"
	config "task-board.com/task-board/internal/configs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func setupEnv(t *testing.T) (usersPath, todosPath string) {
	t.Helper()

	dir := t.TempDir()
	usersPath = filepath.Join(dir, "users.json")
	todosPath = filepath.Join(dir, "todos.json")
	writeFile(t, usersPath, `[{"username":"admin","password":"pw"}]`)

	t.Chdir(dir)
	t.Setenv("USERS_FILE_PATH", usersPath)
	t.Setenv("TODOS_FILE_PATH", todosPath)
	t.Setenv("JWT_SECRET", "cmd-secret")
	t.Setenv("TASK_STORE_DRIVER", "")
	t.Setenv("LOG_LEVEL", "error")
	configPath = ""
	return usersPath, todosPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadCredentials(t *testing.T) {
	usersPath, _ := setupEnv(t)

	cfg, _, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	admins, err := loadCredentials(context.Background(), cfg)
	if err != nil {
		t.Fatalf("loadCredentials() error: %v", err)
	}
	if !admins.IsAdmin("admin") {
		t.Fatal("expected admin to be loaded")
	}

	writeFile(t, usersPath, `[{"username":"admin"`)
	if _, err := loadCredentials(context.Background(), cfg); err == nil {
		t.Fatal("malformed credentials must fail")
	}

	cfg.UsersFilePath = filepath.Join(t.TempDir(), "missing.json")
	if _, err := loadCredentials(context.Background(), cfg); err == nil {
		t.Fatal("missing credentials must fail")
	}
}

func TestOpenTaskBackend(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{config.DriverFile, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.TaskStoreDriver = driver
			cfg.TodosFilePath = filepath.Join(t.TempDir(), "todos.json")
			cfg.DatabaseDSN = filepath.Join(t.TempDir(), "tasks.db")

			cfg.SerializeMutations = true

			backend, err := openTaskBackend(ctx, cfg)
			if err != nil {
				t.Fatalf("openTaskBackend() error: %v", err)
			}
			defer backend.close()

			if backend.writer == nil {
				t.Fatal("expected a writer lock when mutations are serialized")
			}
			if err := backend.store.Write(ctx, []byte(`[]`)); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got, err := backend.store.Read(ctx)
			if err != nil || string(got) != `[]` {
				t.Fatalf("Read() = %q, %v", got, err)
			}
		})
	}

	cfg := config.Defaults()
	cfg.TaskStoreDriver = "tape"
	if _, err := openTaskBackend(ctx, cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidateCommand(t *testing.T) {
	_, todosPath := setupEnv(t)

	out, err := run(t, "validate")
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "does not exist yet") {
		t.Fatalf("expected note about missing task snapshot, got %q", out)
	}

	writeFile(t, todosPath, `[{"id":"seven"}]`)
	out, err = run(t, "validate")
	if err == nil {
		t.Fatalf("expected validation failure, got %q", out)
	}
	if !strings.Contains(out, "tasks:") || !strings.Contains(out, "is invalid") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestValidateCommandReadsConfiguredStore(t *testing.T) {
	_, todosPath := setupEnv(t)
	dsn := filepath.Join(t.TempDir(), "tasks.db")
	t.Setenv("TASK_STORE_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("TASK_SNAPSHOT_KEY", "todos")

	// The file is not read by the sqlite driver, so its contents must not matter.
	writeFile(t, todosPath, `[{"id":"seven"}]`)

	out, err := run(t, "validate")
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `sqlite snapshot "todos" does not exist yet`) {
		t.Fatalf("expected note about missing sqlite snapshot, got %q", out)
	}

	cfg := config.Defaults()
	cfg.TaskStoreDriver = config.DriverSQLite
	cfg.DatabaseDSN = dsn
	backend, err := openTaskBackend(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openTaskBackend() error: %v", err)
	}
	if err := backend.store.Write(context.Background(), []byte(`[{"id":-1.5}]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	backend.close()

	out, err = run(t, "validate")
	if err == nil {
		t.Fatalf("expected validation failure, got %q", out)
	}
	if !strings.Contains(out, `tasks: sqlite snapshot "todos" is invalid`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTokenCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "token", "admin")
	if err != nil {
		t.Fatalf("token failed: %v\n%s", err, out)
	}

	tokens, err := auth.NewTokenService("cmd-secret")
	if err != nil {
		t.Fatalf("NewTokenService() error: %v", err)
	}
	claims, err := tokens.Verify(strings.TrimSpace(out), time.Now())
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("expected subject admin, got %q", claims.Subject)
	}

	if _, err := run(t, "token", "nobody"); err == nil {
		t.Fatal("expected error for unknown administrator")
	}
}
