package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"classcheck/internal/analyzer"
	"classcheck/internal/config"
	"classcheck/internal/watcher"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	formatFlag         string
	watchFlag          bool
	configFlag         string
	inconclusiveFlag   bool
	generateConfigFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "classcheck [files or directories]",
	Short: "A C/C++ class analyzer that detects constructor, operator= and destructor defects",
	Long: `classcheck is a static analysis tool that scans C/C++ classes for
uninitialized members, non-conforming assignment operators, missing
virtual destructors, const-correctness and misuse of memset on non-POD
types.

Examples:
  classcheck .                             # Analyze current directory
  classcheck src/widget.cpp                # Analyze specific files
  classcheck --format=json .               # Output results in JSON format
  classcheck --inconclusive include/       # Enable inconclusive checks
  classcheck --generate-config             # Generate sample config file`,
	Run: runAnalysis,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (console, json)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-analyze on file changes")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().BoolVar(&inconclusiveFlag, "inconclusive", false, "Enable inconclusive checks")
	rootCmd.Flags().BoolVar(&generateConfigFlag, "generate-config", false, "Generate sample configuration file")
}

func runAnalysis(cmd *cobra.Command, args []string) {
	if generateConfigFlag {
		generateConfig()
		return
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		color.Red("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if inconclusiveFlag {
		cfg.Checks.Inconclusive = true
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	if err := analyzeOnce(cfg, args); err != nil {
		color.Red("Analysis failed: %v\n", err)
		os.Exit(1)
	}

	if watchFlag {
		watchAndReanalyze(cfg, args)
	}
}

func analyzeOnce(cfg *config.Config, args []string) error {
	var sourceFiles []string
	for _, arg := range args {
		files, err := collectSourceFiles(cfg, arg)
		if err != nil {
			color.Red("Error collecting files from %s: %v\n", arg, err)
			continue
		}
		sourceFiles = append(sourceFiles, files...)
	}

	if len(sourceFiles) == 0 {
		color.Yellow("No C/C++ files found to analyze\n")
		return nil
	}

	engine := analyzer.NewAnalyzer(cfg)
	reportGen := analyzer.NewReportGenerator(cfg)

	if cfg.Output.Verbose {
		color.Cyan("Analyzing %d files with %d checks...\n\n", len(sourceFiles), engine.GetCheckCount())
	} else {
		color.Cyan("Analyzing %d files...\n\n", len(sourceFiles))
	}

	result, err := engine.AnalyzeFiles(sourceFiles)
	if err != nil {
		return err
	}

	report := reportGen.Generate(result)

	if cfg.Output.OutputFile != "" {
		if err := writeReportToFile(report, cfg.Output.OutputFile); err != nil {
			color.Red("Failed to write report to file: %v\n", err)
		} else {
			color.Green("Report saved to: %s\n", cfg.Output.OutputFile)
		}
	} else {
		fmt.Print(report)
	}
	return nil
}

// watchAndReanalyze blocks, re-running the analysis whenever a watched
// source file changes, until interrupted.
func watchAndReanalyze(cfg *config.Config, args []string) {
	fw, err := watcher.NewFileWatcher(cfg)
	if err != nil {
		color.Red("Failed to start watch mode: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	err = fw.Watch(args, func(changed []string) error {
		color.Cyan("Changes detected in %d file(s), re-analyzing...\n", len(changed))
		return analyzeOnce(cfg, args)
	})
	if err != nil {
		color.Red("Failed to watch paths: %v\n", err)
		os.Exit(1)
	}

	color.Cyan("Watching for changes, press Ctrl-C to stop...\n")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
}

func writeReportToFile(report, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(report), 0644)
}

func generateConfig() {
	configPath := ".classcheck.yml"
	if err := config.GenerateConfig(configPath); err != nil {
		color.Red("Failed to generate config file: %v\n", err)
		os.Exit(1)
	}
	color.Green("Generated sample configuration file: %s\n", configPath)
	color.Cyan("Edit this file to customize classcheck behavior\n")
	color.Cyan("Run 'classcheck --config=%s .' to use it\n", configPath)
}

// collectSourceFiles recursively finds all C/C++ files in the given path
func collectSourceFiles(cfg *config.Config, path string) ([]string, error) {
	var sourceFiles []string

	err := filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if name == "build" || name == ".git" || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Size() > int64(cfg.Files.MaxFileSize)*1024 {
			return nil
		}

		if cfg.IsSourceFile(filePath) {
			sourceFiles = append(sourceFiles, filePath)
		}

		return nil
	})

	return sourceFiles, err
}
