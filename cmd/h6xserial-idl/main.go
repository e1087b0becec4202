// Copyright (c) 2024 Neomantra Corp

// Command h6xserial-idl generates a C header (or Markdown protocol
// docs) from a JSON intermediate-representation schema describing a
// fixed-frame serial messaging protocol.
package main

import (
	"fmt"
	"os"

	"github.com/Ar-Ray-code/h6xserial-idl/config"
	"github.com/Ar-Ray-code/h6xserial-idl/docemit"
	"github.com/Ar-Ray-code/h6xserial-idl/emit"
	emitc "github.com/Ar-Ray-code/h6xserial-idl/emit/c"
	"github.com/Ar-Ray-code/h6xserial-idl/ir"
	"github.com/Ar-Ray-code/h6xserial-idl/writer"
	"github.com/spf13/cobra"
)

///////////////////////////////////////////////////////////////////////////////

var (
	exportDocs     bool
	targetName     string
	prefix         string
	compressOutput bool
	verbose        bool
)

func requireNoError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

func requireNoErrorWithoutPrint(err error) {
	if err != nil {
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize()

	cfg := config.Default()

	rootCmd.Flags().BoolVar(&exportDocs, "export_docs", false, "Emit Markdown protocol documentation instead of a C header")
	rootCmd.Flags().StringVar(&targetName, "target", cfg.Target, "Emitter target language")
	rootCmd.Flags().StringVar(&prefix, "prefix", cfg.Prefix, "Namespace prefix for generated identifiers")
	rootCmd.Flags().BoolVar(&compressOutput, "compress-output", false, "Also write a .zst companion of the generated artifact")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(docsCmd)

	err := rootCmd.Execute()
	requireNoErrorWithoutPrint(err)
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "h6xserial-idl [--export_docs] [input_path] [output_path]",
	Short: "h6xserial-idl generates C headers and docs from a serial protocol IR",
	Long:  "h6xserial-idl generates C headers and docs from a serial protocol IR",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Default()
		cfg.Target = targetName
		cfg.Prefix = prefix
		cfg.CompressOutput = compressOutput

		requireNoError(run(cfg, args, exportDocs, verbose))
	},
}

func run(cfg config.Config, args []string, docsMode bool, verbose bool) error {
	schema, err := resolveSchema(cfg, args)
	if err != nil {
		return err
	}

	outputPath := resolveOutput(cfg, args, docsMode)

	var artifact []byte
	if docsMode {
		artifact = docemit.Render(schema)
	} else {
		registry := emit.NewRegistry()
		registry.Register(emitc.New())
		artifact, err = registry.Emit(cfg.Target, schema, cfg)
		if err != nil {
			return err
		}
	}

	if err := writer.Write(outputPath, artifact, cfg.CompressOutput); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stdout, "wrote %s (%d bytes)\n", outputPath, len(artifact))
	}
	return nil
}

func resolveSchema(cfg config.Config, args []string) (*ir.Schema, error) {
	if len(args) >= 1 {
		return ir.ParseFile(args[0])
	}
	root, _, err := ir.ProbeLoad(cfg.InputProbe)
	if err != nil {
		return nil, err
	}
	return ir.Parse(root)
}

func resolveOutput(cfg config.Config, args []string, docsMode bool) string {
	if len(args) >= 2 {
		return args[1]
	}
	if docsMode {
		return cfg.DocsDefaultOut
	}
	return cfg.CodeDefaultOut
}
