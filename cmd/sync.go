// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push global entity changes into tenant schemas",
}

var syncUserCmd = &cobra.Command{
	Use:   "user [global-user-id]",
	Short: "Sync a global user into every tenant with an active membership",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		ctx := context.Background()
		user, err := stack.storage.GetGlobalUser(ctx, args[0])
		if err != nil {
			return fmt.Errorf("loading global user: %w", err)
		}

		result, err := stack.syncService.SyncUserToTenants(ctx, user)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TENANT\tSYNCED\tCONFLICT RESOLVED\tERROR")
		for _, outcome := range result.PerTenant {
			errText := ""
			if outcome.Err != nil {
				errText = outcome.Err.Error()
			}
			fmt.Fprintf(w, "%s\t%t\t%t\t%s\n", outcome.TenantID, outcome.Synced, outcome.ConflictResolved, errText)
		}
		w.Flush()

		if !result.Success {
			return fmt.Errorf("sync incomplete: %d of %d tenants synced", result.SyncedCount, len(result.PerTenant))
		}
		fmt.Printf("%d tenants synced, %d conflicts resolved\n", result.SyncedCount, result.ConflictsResolved)
		return nil
	},
}

var syncCourseCmd = &cobra.Command{
	Use:   "course [global-course-id] [tenant-id]",
	Short: "Sync a global course into one tenant, preserving local customizations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := buildStack()
		if err != nil {
			return err
		}
		defer stack.cleanup()

		ctx := context.Background()
		course, err := stack.storage.GetGlobalCourse(ctx, args[0])
		if err != nil {
			return fmt.Errorf("loading global course: %w", err)
		}

		if err := stack.syncService.SyncCourseToTenant(ctx, course, args[1]); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Printf("Course %s synced into tenant %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncUserCmd)
	syncCmd.AddCommand(syncCourseCmd)
	rootCmd.AddCommand(syncCmd)
}
