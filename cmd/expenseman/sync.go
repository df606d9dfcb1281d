package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gulshanb/expenseman/internal/common"
)

func syncCmd() *cobra.Command {
	var showContext bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync cycle and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.Refresh(ctx); err != nil {
				if errors.Is(err, common.ErrNotSyncable) {
					return common.NewUserError("configure the sheet URL and API key to sync", err)
				}
				return err
			}

			snapshot := eng.Snapshot()
			fmt.Printf("Synced at %s\n", eng.LastSync().Format("15:04:05"))
			fmt.Printf("  payments:   %d (%.2f)\n", len(snapshot.Payments), snapshot.TotalPayments())
			fmt.Printf("  expenses:   %d (%.2f)\n", len(snapshot.Expenses), snapshot.TotalExpenses())
			fmt.Printf("  labours:    %d\n", len(snapshot.Labours))
			fmt.Printf("  clients:    %d\n", len(snapshot.Clients))
			fmt.Printf("  sites:      %d\n", len(snapshot.Sites))
			fmt.Printf("  categories: %d\n", len(snapshot.ExpenseCategories))
			fmt.Printf("  tasks:      %d, habits: %d (local)\n", len(snapshot.Tasks), len(snapshot.Habits))

			if showContext {
				fmt.Println()
				fmt.Println(snapshot.BusinessContext())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showContext, "context", false, "print the chat-assistant business context")
	return cmd
}
