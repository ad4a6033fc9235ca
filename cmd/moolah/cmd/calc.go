package cmd

import (
	"fmt"
	"io"

	"github.com/iwvelando/moolah/internal/calculate"
	"github.com/iwvelando/moolah/internal/config"
	"github.com/iwvelando/moolah/pkg/constants"
	"github.com/iwvelando/moolah/pkg/output"
	"github.com/iwvelando/moolah/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	calcConfigFile   string
	calcOutputFormat string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate the calculations in a configuration file",
	Long: `Evaluate every calculation listed in a YAML configuration file and print
the results. A calculation whose arithmetic fails is reported alongside
the others; an unknown formula or a malformed input aborts the run.

Examples:
  moolah calc --config config.yaml
  moolah calc --config config.yaml --output-format csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().StringVar(&calcConfigFile, "config", constants.DefaultConfigFile, "path to configuration file")
	calcCmd.Flags().StringVar(&calcOutputFormat, "output-format", "", "type of output override: pretty, csv, json")
}

func runCalc(w io.Writer) error {
	conf, err := config.LoadConfiguration(calcConfigFile)
	if err != nil {
		printError(fmt.Sprintf("failed to load configuration at %s", calcConfigFile), err)
		return err
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		printError("failed to initialize logger", err)
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if calcOutputFormat != "" {
		outputFormat = calcOutputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main"),
		)
		return err
	}

	if err := validation.ValidatePrecision(conf.Output.Precision); err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main"),
		)
		return err
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := calculate.Run(logger, *conf)
	if err != nil {
		logger.Error("failed to evaluate calculations",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(w, results, conf.Output.Precision)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(w, results, conf.Output.Precision)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(w, results, conf.Output.Precision)
	}
	if err != nil {
		logger.Error("failed to write results",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	return err
}
