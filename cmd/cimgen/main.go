// CIM Automation Platform — Confidential Information Memorandum generator
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vamsiiiiii/CIM-Automation-Platform/api"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/compiler"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/config"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/layout"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/narrative"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/pipeline"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/template"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cimgen",
	Short: "CIM Automation Platform — automated Confidential Information Memorandum generation",
	Long: `cimgen turns raw financial series into a complete Confidential
Information Memorandum: deterministic metrics, scenario projections,
narrative sections with a template fallback, and a paginated PDF.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		setupLogging(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// setupLogging configures the global zerolog logger from config.
func setupLogging(lc config.LoggingConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if lc.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cimgen %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Generate Command ---

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a CIM from a JSON request file",
	Long: `Generate a complete CIM. The input file carries the generation
request (company, financialData, industryData, assumptions); the output
is a rendered PDF, or the compiled document as JSON with --json.

Examples:
  cimgen generate --input request.json --output atlas.pdf
  cimgen generate --input request.json --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, _ := cmd.Flags().GetString("input")
		outputPath, _ := cmd.Flags().GetString("output")
		asJSON, _ := cmd.Flags().GetBool("json")

		if inputPath == "" {
			return fmt.Errorf("provide a request file with --input")
		}

		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}
		var req models.GenerateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}

		ctx := context.Background()

		var gen narrative.Generator
		if cfg.LLM.GeminiKey != "" {
			g, err := narrative.NewGeminiGenerator(ctx, cfg.LLM.GeminiKey, cfg.LLM.Model)
			if err != nil {
				return fmt.Errorf("narrative setup: %w", err)
			}
			defer g.Close()
			gen = g
		}

		timeout := time.Duration(cfg.LLM.TimeoutSec) * time.Second
		svc := pipeline.New(
			narrative.NewAdapter(gen, narrative.WithTimeout(timeout)),
			compiler.New(),
		)

		result, err := svc.Generate(ctx, req)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		pdf, err := layout.Render(result.Content)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if outputPath == "" {
			outputPath = layout.Filename(result.Content.Title)
		}
		if err := os.WriteFile(outputPath, pdf, 0644); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}

		fmt.Printf("📄 Wrote %s (%d bytes)\n", outputPath, len(pdf))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("input", "", "generation request JSON file")
	generateCmd.Flags().String("output", "", "output PDF path (default: derived from title)")
	generateCmd.Flags().Bool("json", false, "print the compiled document as JSON instead of a PDF")
}

// --- Templates Command ---

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available document templates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range template.All() {
			fmt.Printf("%-10s %s — %s\n", t.ID, t.Name, t.Description)
			fmt.Printf("           sections: %s\n", strings.Join(t.Sections, ", "))
		}
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}
		defer srv.Close()

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Starting CIM API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  CIM Automation Platform — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    LLM Model:   %s (timeout: %ds)\n", cfg.LLM.Model, cfg.LLM.TimeoutSec)
		fmt.Printf("    API Server:  %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Printf("    Upload Max:  %d bytes\n", cfg.Upload.MaxSizeBytes)
		fmt.Printf("    Logging:     %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		fmt.Println()

		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-20s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
