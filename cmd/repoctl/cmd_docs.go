package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repoctl/internal/docs"
	"repoctl/internal/gitinfo"
	"repoctl/internal/protobuf"
)

var (
	docsWatch        bool
	docsMacrosJSON   bool
	docsPreviewWidth int
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Documentation site helpers",
}

var docsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate API reference pages for the site generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := docs.NewGenerator(cfg.Docs, logger)
		pages, err := gen.Generate()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %d pages under %s\n", len(pages), cfg.Docs.OutputPath)

		// Proto reference stubs are best-effort: repos without protos skip them.
		if files, err := protobuf.Discover(cfg.Protobuf); err == nil {
			if err := docs.GenerateProtoPages(cfg.Protobuf.DocsPath, files); err != nil {
				return err
			}
		}

		if docsWatch {
			return gen.Watch(cmd.Context())
		}
		return nil
	},
}

var docsMacrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "Print the macro variables derived from git state",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := gitinfo.NewReader(runner, logger, "")
		info := reader.Read(cmd.Context(), os.Getenv("GIT_REF_NAME"))
		return docs.WriteVariables(cmd.OutOrStdout(), docs.Variables(info), docsMacrosJSON)
	},
}

var docsPreviewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render a markdown file to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := docs.Preview(args[0], docsPreviewWidth)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	docsGenerateCmd.Flags().BoolVar(&docsWatch, "watch", false, "regenerate when sources change")
	docsMacrosCmd.Flags().BoolVar(&docsMacrosJSON, "json", false, "emit JSON instead of key=value lines")
	docsPreviewCmd.Flags().IntVar(&docsPreviewWidth, "width", 100, "wrap width for rendered output")

	docsCmd.AddCommand(docsGenerateCmd)
	docsCmd.AddCommand(docsMacrosCmd)
	docsCmd.AddCommand(docsPreviewCmd)
}
