// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/alumnify/tenant-isolation/internal/blob"
	"github.com/alumnify/tenant-isolation/internal/config"
	"github.com/alumnify/tenant-isolation/internal/db"
	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/monitoring"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/tracing"
	"github.com/alumnify/tenant-isolation/pkg/migration"
	"github.com/alumnify/tenant-isolation/pkg/schema"
	tenantsync "github.com/alumnify/tenant-isolation/pkg/sync"
	"github.com/alumnify/tenant-isolation/pkg/validation"
)

var nonInteractive bool

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenant data isolation",
}

var migrateTenantCmd = &cobra.Command{
	Use:   "migrate [tenant-id]",
	Short: "Migrate one tenant from the shared tables into its own schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, fmt.Sprintf("Migrate tenant %s into an isolated schema?", args[0])) {
			return nil
		}

		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		result, err := stack.orchestrator.Migrate(context.Background(), args[0])
		printResults(result)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil
	},
}

var migrateAllTenantsCmd = &cobra.Command{
	Use:   "migrate-all",
	Short: "Migrate every tenant still on the shared tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "Migrate every eligible tenant into isolated schemas?") {
			return nil
		}

		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		results, err := stack.orchestrator.MigrateAll(context.Background())
		if err != nil {
			return err
		}
		printResults(results...)

		failed := 0
		for _, result := range results {
			if result.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d tenant migrations failed", failed, len(results))
		}
		fmt.Printf("%d tenants migrated\n", len(results))
		return nil
	},
}

var rollbackTenantCmd = &cobra.Command{
	Use:   "rollback [tenant-id]",
	Short: "Restore a migrated tenant to the shared tables from its latest snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, fmt.Sprintf("Roll back tenant %s to the shared tables? Its schema will be dropped.", args[0])) {
			return nil
		}

		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		if err := stack.orchestrator.Rollback(context.Background(), args[0]); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		fmt.Printf("Tenant rolled back: %s\n", args[0])
		return nil
	},
}

var snapshotTenantCmd = &cobra.Command{
	Use:   "snapshot [tenant-id]",
	Short: "Snapshot a migrated tenant's schema into the backup store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		backup, err := stack.manager.BackupSchema(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}
		fmt.Printf("Snapshot written: %s\n", backup.Ref)
		return nil
	},
}

var restoreTenantCmd = &cobra.Command{
	Use:   "restore [tenant-id] [backup-ref]",
	Short: "Restore a migrated tenant's schema from a snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, fmt.Sprintf("Restore tenant %s from %s? Current schema rows will be replaced.", args[0], args[1])) {
			return nil
		}

		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		if err := stack.manager.RestoreSchema(context.Background(), args[0], args[1]); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Printf("Tenant restored: %s\n", args[0])
		return nil
	},
}

var schemaRollbackCmd = &cobra.Command{
	Use:   "schema-rollback [tenant-id] [steps]",
	Short: "Reverse the last N structural migrations on a tenant schema",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := strconv.Atoi(args[1])
		if err != nil || steps < 1 {
			return fmt.Errorf("steps must be a positive integer, got %q", args[1])
		}
		if !confirm(cmd, fmt.Sprintf("Reverse the last %d structural migrations on tenant %s?", steps, args[0])) {
			return nil
		}

		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		if err := stack.manager.RollbackSchema(context.Background(), args[0], steps); err != nil {
			return fmt.Errorf("schema rollback failed: %w", err)
		}
		fmt.Printf("Reversed %d migrations on tenant %s\n", steps, args[0])
		return nil
	},
}

func init() {
	tenantCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "skip confirmation prompts")
	tenantCmd.AddCommand(migrateTenantCmd)
	tenantCmd.AddCommand(migrateAllTenantsCmd)
	tenantCmd.AddCommand(rollbackTenantCmd)
	tenantCmd.AddCommand(snapshotTenantCmd)
	tenantCmd.AddCommand(restoreTenantCmd)
	tenantCmd.AddCommand(schemaRollbackCmd)
	rootCmd.AddCommand(tenantCmd)
}

// confirm prompts on stdin unless --non-interactive was passed.
func confirm(cmd *cobra.Command, prompt string) bool {
	if nonInteractive {
		return true
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
		return false
	}
	return true
}

// cliStack is the migration machinery wired for a one-shot CLI invocation.
// The CLI runs against the database directly, there is no RPC hop.
type cliStack struct {
	storage      *storage.Storage
	manager      *schema.Manager
	orchestrator *migration.Orchestrator
	syncService  *tenantsync.Service
	cleanup      func()
}

func buildStack() (*cliStack, error) {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}
	if err := specs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	monitor := monitoring.NewNoopMonitor()
	tracer := tracing.NewNoopTracer()

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database client: %v", err)
	}

	blobStore, err := blob.NewStore(context.Background(), blob.Config{
		Driver:      specs.BackupDriver,
		FSRoot:      specs.BackupFSRoot,
		S3Bucket:    specs.BackupS3Bucket,
		S3Region:    specs.BackupS3Region,
		S3Endpoint:  specs.BackupS3Endpoint,
		S3PathStyle: specs.BackupS3PathStyle,
	})
	if err != nil {
		dbClient.Close()
		return nil, fmt.Errorf("failed to create backup store: %v", err)
	}

	s := storage.NewStorage(dbClient, tracer, monitor, logger)
	hybridData := schema.NewHybridStore(dbClient)
	localData := schema.NewSchemaStore(dbClient)
	manager := schema.NewManager(dbClient, blobStore, hybridData, localData, tracer, monitor, logger)
	validator := validation.NewService(s, manager, localData, tracer, logger)

	orchestrator := migration.NewOrchestrator(
		s,
		manager,
		hybridData,
		localData,
		validator,
		migration.Config{
			PurgeHybrid: specs.PurgeHybridAfterMigration,
			RemapIDs:    specs.RemapIDsOnMigration,
		},
		tracer,
		logger,
	)

	return &cliStack{
		storage:      s,
		manager:      manager,
		orchestrator: orchestrator,
		syncService:  tenantsync.NewService(s, localData, nil, tracer, logger),
		cleanup: func() {
			dbClient.Close()
			logger.Sync()
		},
	}, nil
}

func printResults(results ...*migration.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TENANT\tSCHEMA\tBACKUP\tDURATION\tRESULT")
	for _, result := range results {
		if result == nil {
			continue
		}
		outcome := "ok"
		if result.Err != nil {
			outcome = result.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			result.TenantID, result.SchemaName, result.BackupRef, result.Duration.Round(time.Millisecond), outcome)
	}
	w.Flush()
}
