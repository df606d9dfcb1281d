package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gulshanb/expenseman/internal/common"
)

func testConnectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Probe the configured spreadsheet and check required tabs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			fetcher, err := newFetcher(ctx)
			if err != nil {
				return err
			}
			if fetcher == nil {
				return common.NewUserError("configure the sheet URL and API key first", common.ErrMissingConfig)
			}

			result := fetcher.TestConnection(ctx)
			fmt.Println(result.Message)
			if !result.OK {
				return fmt.Errorf("connection test failed")
			}
			return nil
		},
	}
}
