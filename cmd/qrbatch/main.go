// Package main provides the CLI entry point for qrbatch.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/qrbatch-go/pkg/logger"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/config"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/output"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/qrcode"
)

// Version is the tool version, overridable at link time.
var Version = "1.0.0"

const defaultConfigPath = "config/custom_config.ini"

var (
	dataPath   string
	outputDir  string
	configPath string
	logLevel   string
	devLog     bool
	reportPath string
	pretty     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qrbatch [input.xlsx]",
		Short: "Generate QR codes from Excel data",
		Long: `qrbatch renders each row of the selected sheets of an Excel workbook as
text and saves it as a QR code PNG under <output>/<sheet>/.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&dataPath, "data", "d", "resources/data.xlsx", "Path to the input Excel file")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "qr_codes", "Output folder for QR codes")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the configuration file (.ini or .json)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&devLog, "dev", false, "Human-readable console logging")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON run report to this file")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the JSON report")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	log, err := logger.New(logLevel, devLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", logLevel, err)
		return err
	}
	defer log.Sync()

	if err := generate(cmd, args, log); err != nil {
		log.Error("QR batch failed", zap.Error(err))
		return err
	}
	return nil
}

func generate(cmd *cobra.Command, args []string, log *zap.Logger) error {
	log.Info("Running QR Code Generator", zap.String("version", Version))

	settings, err := loadSettings(cmd, log)
	if err != nil {
		return err
	}

	inputPath := dataPath
	if len(args) == 1 {
		inputPath = args[0]
	}

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	batch := qrbatch.New(settings.Batch, qrcode.NewWriter(settings.QR), qrbatch.NewLogObserver(log))
	report, runErr := batch.Run(inputPath, outputDir)

	if report != nil && reportPath != "" {
		if err := output.WriteReport(report, reportPath, pretty); err != nil {
			log.Error("Failed to write report", zap.String("path", reportPath), zap.Error(err))
		}
	}
	if runErr != nil {
		if report != nil {
			log.Warn("Batch stopped",
				zap.Strings("completed_sheets", report.CompletedSheets),
				zap.String("failed_sheet", report.FailedSheet),
				zap.Int("generated", report.Generated),
				zap.Int("skipped", report.Skipped),
			)
		}
		return runErr
	}

	log.Info("QR codes generated successfully",
		zap.String("output", outputDir),
		zap.Int("generated", report.Generated),
		zap.Int("skipped", report.Skipped),
		zap.Strings("sheets", report.CompletedSheets),
	)
	return nil
}

// loadSettings reads the configuration file. A missing file at the default
// location means an empty configuration; an explicitly given one must exist.
func loadSettings(cmd *cobra.Command, log *zap.Logger) (*config.Settings, error) {
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			log.Warn("Configuration file not found, using defaults", zap.String("path", configPath))
			return config.Load(config.Empty{})
		}
	}
	return config.LoadFile(configPath)
}
