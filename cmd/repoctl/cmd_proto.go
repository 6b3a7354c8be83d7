package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoctl/internal/protobuf"
)

var protoCmd = &cobra.Command{
	Use:   "proto",
	Short: "Protobuf build configuration",
}

var protoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the proto files the compiler would receive",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := protobuf.Discover(cfg.Protobuf)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

var protoGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the protobuf compiler with the configured layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := protobuf.Generate(cmd.Context(), runner, logger, cfg.Protobuf)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "compiled %d proto file(s) into %s\n", len(files), cfg.Protobuf.OutPath)
		return nil
	},
}

func init() {
	protoCmd.AddCommand(protoListCmd)
	protoCmd.AddCommand(protoGenerateCmd)
}
