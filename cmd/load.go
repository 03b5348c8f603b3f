package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/wsparam/param"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a request payload against an operation's input params",
	Long: `Load decodes a JSON or YAML payload, coerces it into the input params of
the given operation and prints the typed result as JSON.

Exits with status 2 when a required parameter is missing.`,
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		operation, _ := cmd.Flags().GetString("operation")
		payload, _ := cmd.Flags().GetString("payload")

		if res := LoadFile(os.Stdout, input, operation, payload); res != 0 {
			os.Exit(res)
		}
	},
}

func LoadFile(out io.Writer, input, operation, payload string) int {
	catalog, err := readCatalog(input)
	if err != nil {
		logger.Error().Err(err).Str("file", input).Msg("unable to read definition")
		return 1
	}

	bytes, err := os.ReadFile(payload)
	if err != nil {
		logger.Error().Err(err).Str("file", payload).Msg("unable to read payload")
		return 1
	}

	var data any
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		logger.Error().Err(err).Str("file", payload).Msg("unable to decode payload")
		return 1
	}

	values, err := catalog.Load(operation, data)
	if err != nil {
		var missing *param.MissingParameterError
		if errors.As(err, &missing) {
			logger.Error().Str("param", missing.Path).Msg("required parameter is missing")
			return 2
		}

		logger.Error().Err(err).Str("operation", operation).Msg("unable to load payload")
		return 3
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(values); err != nil {
		logger.Error().Err(err).Msg("unable to write result")
		return 4
	}

	return 0
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringP("input", "i", "service.yaml", "Service definition file")
	loadCmd.Flags().StringP("operation", "O", "", "Operation name")
	loadCmd.Flags().StringP("payload", "p", "", "Payload file (JSON or YAML)")
	loadCmd.MarkFlagRequired("operation")
	loadCmd.MarkFlagRequired("payload")
}
