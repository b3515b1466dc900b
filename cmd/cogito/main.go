package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cogitolab/cogito/internal/config"
	"github.com/cogitolab/cogito/internal/core"
	"github.com/cogitolab/cogito/internal/export"
	"github.com/cogitolab/cogito/internal/session"
	"github.com/cogitolab/cogito/internal/transport"
)

var (
	cfgPath    string
	serviceURL string
	appConfig  *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cogito",
	Short: "Dialectical decision analysis",
	Long: `cogito runs a decision topic through a thesis/antithesis/synthesis
debate on the analysis service and renders the resulting report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			appConfig, err = config.LoadFrom(cfgPath)
		} else {
			appConfig, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if serviceURL != "" {
			appConfig.Service.URL = serviceURL
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default: ~/.cogito/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service", "", "Analysis service URL (default: http://localhost:8000)")

	rootCmd.AddCommand(debateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
}

func newClient() *transport.Client {
	return transport.New(appConfig.Service.URL, appConfig.Service.Timeout)
}

// ============================================================================
// DEBATE COMMAND
// ============================================================================

var (
	exportFlag string
	outputFlag string
)

var debateCmd = &cobra.Command{
	Use:   "debate [topic]",
	Short: "Run a debate on a decision topic",
	Long: `Submit a decision topic to the analysis service and watch the
report unfold: thesis, antithesis, risks, then the synthesis verdict.

Examples:
  cogito debate "Should we adopt microservices?"
  cogito debate "Rewrite in Rust?" --export pdf
  cogito debate "Buy vs build" --export markup -o ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDebate,
}

func init() {
	debateCmd.Flags().StringVarP(&exportFlag, "export", "e", "", "Export the report on completion (markup, richtext, json, pdf)")
	debateCmd.Flags().StringVarP(&outputFlag, "output", "o", ".", "Directory for exported reports")
}

func runDebate(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")

	sink := newTerminalSink(os.Stdout)
	ctrl := session.New(newClient(), sink, session.DefaultPacing())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Println("\n\nCancelling...")
		ctrl.Cancel()
	}()

	ctrl.Start(topic)
	<-ctrl.Done()
	fmt.Println()

	switch ctrl.Phase() {
	case core.PhaseCompleted:
		if exportFlag != "" {
			return exportResult(exportFlag, topic, ctrl.Result(), outputFlag)
		}
		return nil
	case core.PhaseCancelled:
		fmt.Println("Debate cancelled.")
		return nil
	case core.PhaseFailed:
		return fmt.Errorf("debate failed")
	default:
		// Start refused the topic; the sink already explained why.
		return fmt.Errorf("invalid topic")
	}
}

func exportResult(format, topic string, result *core.DebateResult, dir string) error {
	artifact, err := export.Export(export.Format(strings.ToLower(format)), topic, result)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Bytes, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Exported to: %s\n", path)
	return nil
}

// ============================================================================
// EXPORT COMMAND
// ============================================================================

var (
	exportTopicFlag string
)

var exportCmd = &cobra.Command{
	Use:   "export [result.json] [format]",
	Short: "Export a saved debate result to file",
	Long: `Render a previously saved debate result (the raw JSON record, as
produced by 'cogito debate --export json' or the service API) into
another format.

Examples:
  cogito export report.json markup
  cogito export report.json pdf --topic "Adopt Kubernetes?"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		result, err := core.ParseResult(data)
		if err != nil {
			return fmt.Errorf("failed to parse result: %w", err)
		}

		label := exportTopicFlag
		if label == "" {
			label = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		return exportResult(args[1], label, result, outputFlag)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportTopicFlag, "topic", "", "Topic label for the report (default: input filename)")
	exportCmd.Flags().StringVarP(&outputFlag, "output", "o", ".", "Directory for exported reports")
}

// ============================================================================
// HEALTH COMMAND
// ============================================================================

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the analysis service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		status, err := newClient().Health(ctx)
		if err != nil {
			return fmt.Errorf("service unreachable at %s: %w", appConfig.Service.URL, err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Service:\t%s\n", appConfig.Service.URL)
		fmt.Fprintf(w, "Status:\t%s\n", status.Status)
		fmt.Fprintf(w, "Active debates:\t%d\n", status.ActiveDebates)
		w.Flush()
		return nil
	},
}

// ============================================================================
// CONFIG COMMAND
// ============================================================================

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Config file: %s\n\n", config.DefaultConfigPath())

		if appConfig != nil {
			fmt.Println("Current settings:")
			fmt.Printf("  Service URL: %s\n", appConfig.Service.URL)
			fmt.Printf("  Request timeout: %s\n", appConfig.Service.Timeout)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}

		if err := config.Default().Save(); err != nil {
			return err
		}

		fmt.Printf("Created config at: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
