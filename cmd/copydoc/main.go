// Package main provides the CLI entry point for copydoc-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/copydoc/copydoc-go/pkg/copydoc"
)

var (
	outputPath string
	plainText  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "copydoc",
		Short: "Convert copy-text tables to Word documents and back",
		Long: `copydoc converts CSV/XLSX copy-text tables (id, group, layer_name,
figma_text) into formatted Word documents for review, and merges edited
documents back into the table, matching rows by id.`,
		SilenceUsage: true,
	}

	buildCmd := &cobra.Command{
		Use:   "build [table.csv]",
		Short: "Render a copy-text table as a Word review document",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .docx path (default: input name with .docx)")

	mergeCmd := &cobra.Command{
		Use:   "merge [original.csv] [edited.docx]",
		Short: "Merge edits from a review document back into the original table",
		Args:  cobra.ExactArgs(2),
		RunE:  runMerge,
	}
	mergeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output table path (default: original name with _updated suffix)")
	mergeCmd.Flags().BoolVar(&plainText, "plain", false, "Extract plain text instead of Markdown formatting")

	extractCmd := &cobra.Command{
		Use:   "extract [document.docx]",
		Short: "Recover a copy-text table from a document with no known source",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output table path (default: input name with .csv)")
	extractCmd.Flags().BoolVar(&plainText, "plain", false, "Extract plain text instead of Markdown formatting")

	rootCmd.AddCommand(buildCmd, mergeCmd, extractCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	tablePath := args[0]
	if _, err := os.Stat(tablePath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", tablePath)
	}

	out := outputPath
	if out == "" {
		out = replaceExt(tablePath, ".docx")
	}

	if err := copydoc.CSVToWord(tablePath, out); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	originalPath, docPath := args[0], args[1]
	for _, p := range args {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", p)
		}
	}

	out := outputPath
	if out == "" {
		ext := filepath.Ext(originalPath)
		out = strings.TrimSuffix(originalPath, ext) + "_updated" + ext
	}

	opts := extractOptions()
	if err := copydoc.WordToCSV(originalPath, docPath, out, opts); err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	if _, err := os.Stat(docPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", docPath)
	}

	out := outputPath
	if out == "" {
		out = replaceExt(docPath, ".csv")
	}

	opts := extractOptions()
	if err := copydoc.WordToNewCSV(docPath, out, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func extractOptions() copydoc.Options {
	preserve := !plainText
	return copydoc.Options{PreserveFormatting: &preserve}
}

func replaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}
