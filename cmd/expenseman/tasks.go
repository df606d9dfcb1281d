package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gulshanb/expenseman/internal/model"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage local tasks",
	}
	cmd.AddCommand(tasksListCmd())
	cmd.AddCommand(tasksAddCmd())
	cmd.AddCommand(tasksDoneCmd())
	cmd.AddCommand(tasksDeleteCmd())
	return cmd
}

func tasksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tasks, err := store.Tasks(cmd.Context())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("no tasks")
				return nil
			}
			for _, t := range tasks {
				fmt.Printf("%s  [%s] %s (due %s, %s)\n", t.ID, t.Status, t.Title, t.Deadline, t.Priority)
			}
			return nil
		},
	}
}

func tasksAddCmd() *cobra.Command {
	var deadline, priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			task, err := store.CreateTask(cmd.Context(), model.Task{
				Title:    args[0],
				Deadline: deadline,
				Priority: model.TaskPriority(priority),
			})
			if err != nil {
				return err
			}
			fmt.Printf("created task %s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", string(model.TaskPriorityMedium), "priority (Low, Medium, High)")
	return cmd
}

func tasksDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			tasks, err := store.Tasks(ctx)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				if t.ID == args[0] {
					t.Status = model.TaskStatusCompleted
					return store.UpdateTask(ctx, t)
				}
			}
			return fmt.Errorf("task %s not found", args[0])
		},
	}
}

func tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return store.DeleteTask(cmd.Context(), args[0])
		},
	}
}
