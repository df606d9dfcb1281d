package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gulshanb/expenseman/internal/model"
)

func habitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "Manage local habits",
	}
	cmd.AddCommand(habitsListCmd())
	cmd.AddCommand(habitsAddCmd())
	cmd.AddCommand(habitsBumpCmd())
	cmd.AddCommand(habitsDeleteCmd())
	return cmd
}

func habitsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all habits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			habits, err := store.Habits(cmd.Context())
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				fmt.Println("no habits")
				return nil
			}
			for _, h := range habits {
				fmt.Printf("%s  %s (%s, streak %d)\n", h.ID, h.Name, h.Frequency, h.Streak)
			}
			return nil
		},
	}
}

func habitsAddCmd() *cobra.Command {
	var frequency string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			habit, err := store.CreateHabit(cmd.Context(), model.Habit{
				Name:      args[0],
				Frequency: model.HabitFrequency(frequency),
			})
			if err != nil {
				return err
			}
			fmt.Printf("created habit %s\n", habit.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", string(model.HabitDaily), "frequency (Daily, Weekly)")
	return cmd
}

func habitsBumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bump <id>",
		Short: "Increment a habit's streak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			habit, err := store.IncrementHabitStreak(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s streak is now %d\n", habit.Name, habit.Streak)
			return nil
		},
	}
}

func habitsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return store.DeleteHabit(cmd.Context(), args[0])
		},
	}
}
