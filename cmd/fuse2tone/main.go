// Package main is the entry point for the fuse2tone CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mustangtools/fuse2tone/pkg/api"
	"github.com/mustangtools/fuse2tone/pkg/convert"
	"github.com/mustangtools/fuse2tone/pkg/registry"
	"github.com/mustangtools/fuse2tone/pkg/tone"
	"github.com/mustangtools/fuse2tone/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	outputDir  string
	familyName string
	productID  string
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fuse2tone",
	Short: "Convert between Fender FUSE presets and Tone JSON documents",
	Long: `fuse2tone is a tool for converting Fender FUSE .fuse preset files
into Tone JSON audio-graph documents, and for extracting canonical Tone
snippets from firmware strings dumps.

Examples:
  fuse2tone convert preset.fuse -o preset.json
  fuse2tone display preset.fuse
  fuse2tone extract strings.txt --family mustang -d snippets/
  fuse2tone carve strings.txt -d fxdb/
  fuse2tone modules
  fuse2tone tui
  fuse2tone serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.fuse>",
	Short: "Convert a FUSE preset to a Tone JSON document",
	Long:  `Parses a FUSE preset XML file and writes the equivalent Tone JSON audio-graph document.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var displayCmd = &cobra.Command{
	Use:   "display <input.fuse>",
	Short: "Show the control-panel values of a FUSE preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisplay,
}

var extractCmd = &cobra.Command{
	Use:   "extract <strings.txt>",
	Short: "Extract canonical Tone snippets from a strings dump",
	Long: `Scans a firmware strings dump line by line for Tone JSON documents
belonging to the given product family, canonicalizes and deduplicates
them, and writes one file per unique snippet.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var carveCmd = &cobra.Command{
	Use:   "carve <strings.txt>",
	Short: "Carve the embedded FXDataBase XML out of a strings dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runCarve,
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the known DSP modules",
	RunE:  runModules,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Convert command
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .json file path")
	convertCmd.Flags().StringVar(&productID, "product", "mustang-lt", "Product ID recorded in the Tone document")

	// Extract command
	extractCmd.Flags().StringVarP(&familyName, "family", "f", "mustang", "Product family to extract")
	extractCmd.Flags().StringVarP(&outputDir, "dir", "d", "", "Output directory for snippets")

	// Carve command
	carveCmd.Flags().StringVarP(&outputDir, "dir", "d", "", "Output directory for carved documents")

	// Serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(displayCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(carveCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func getOutputPath(input, defaultExt string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}

func getOutputDir(input, suffix string) string {
	if outputDir != "" {
		return outputDir
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + suffix
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".json")

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	conv := convert.New(registry.Builtin(), convert.NewGapTable())
	result, err := conv.ConvertPreset(data)
	if err != nil {
		return err
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}

	doc, err := result.ToneDocument(productID)
	if err != nil {
		return err
	}
	canonical, err := tone.CanonicalJSON(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, []byte(canonical+"\n"), 0644); err != nil {
		return err
	}

	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runDisplay(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	conv := convert.New(registry.Builtin(), convert.NewGapTable())
	result, err := conv.ConvertPreset(data)
	if err != nil {
		return err
	}

	fmt.Printf("Preset: %s\n", result.Name)
	for i, slot := range result.Slots {
		if slot == nil {
			continue
		}
		fmt.Printf("\n[%s] %s\n", strings.ToUpper(string(registry.SlotOrder[i])), slot.Descriptor.DisplayName)
		names := make([]string, 0, len(slot.Display))
		for name := range slot.Display {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-12s %s\n", name, slot.Display[name])
		}
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	dir := getOutputDir(input, "_snippets")

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	result := tone.Scan(strings.Split(string(data), "\n"), familyName)
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}

	if err := result.WriteSnippets(dir); err != nil {
		return err
	}
	for _, line := range result.Report() {
		fmt.Println(line)
	}

	fmt.Printf("%d unique snippets written to %s\n", len(result.Snippets), dir)
	return nil
}

func runCarve(cmd *cobra.Command, args []string) error {
	input := args[0]
	dir := getOutputDir(input, "_fxdb")

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	db, err := convert.CarveFXDatabase(strings.Split(string(data), "\n"))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "FXDataBase.xml"), []byte(db.Full), 0644); err != nil {
		return err
	}
	names := make([]string, 0, len(db.Products))
	for name := range db.Products {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(db.Products[name]), 0644); err != nil {
			return err
		}
		fmt.Printf("Carved %s\n", name)
	}

	fmt.Printf("FXDataBase and %d product documents written to %s\n", len(db.Products), dir)
	return nil
}

func runModules(cmd *cobra.Command, args []string) error {
	for _, d := range registry.Builtin().All() {
		fmt.Printf("%-12s %4d  %-22s %s\n", d.Category, d.NativeID, d.FenderID, d.DisplayName)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
