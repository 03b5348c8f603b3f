package cmd

import (
	"os"
	"path/filepath"

	"github.com/masnyjimmy/wsparam/compilation"
	"github.com/spf13/cobra"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a service definition into a type descriptor document",
	Long: `Compile validates a service definition, builds the parameter schema of
every operation and writes the resulting descriptor document: names,
namespaced types, multiplicity and nested fields.

The output format follows the extension of the output file (.json or .yaml).`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		input, _ := cmd.Flags().GetString("input")

		if res := CompileFile(output, input); res != 0 {
			os.Exit(res)
		}
	},
}

func CompileFile(output, input string) int {
	logger.Info().Str("file", input).Msg("reading definition")

	document, err := readDocument(input)
	if err != nil {
		logger.Error().Err(err).Msg("unable to read definition")
		return 2
	}

	logger.Info().Msg("compiling definition")

	var bytes []byte

	switch ext := filepath.Ext(output); ext {
	case ".json":
		bytes, err = compilation.CompileToJSON(document)
	case ".yaml", ".yml":
		bytes, err = compilation.CompileToYAML(document)
	default:
		logger.Warn().Str("extension", ext).Msg("unknown file extension, selecting yaml")
		bytes, err = compilation.CompileToYAML(document)
	}

	if err != nil {
		logger.Error().Err(err).Msg("compilation failed")
		return 3
	}

	if err := os.WriteFile(output, bytes, 0644); err != nil {
		logger.Error().Err(err).Str("file", output).Msg("unable to write file")
		return 4
	}

	logger.Info().Str("file", output).Msg("finished")
	return 0
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringP("input", "i", "service.yaml", "Service definition file")
	compileCmd.Flags().StringP("output", "o", "types.yaml", "Output filepath")
	compileCmd.MarkFlagRequired("output")
	compileCmd.MarkFlagFilename("output", "yaml", "yml", "json")
	compileCmd.MarkFlagFilename("input", "yaml", "yml", "json")
}
