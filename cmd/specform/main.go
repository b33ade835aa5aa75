// Command specform renders schema blocks from spec files and decodes model
// responses against them.
//
// Usage:
//
//	specform render --spec book-report.yaml            # print the schema block
//	specform decode --spec book-report.yaml < reply    # decode and validate a response
//	specform version
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/BaSui01/specform"
	"github.com/BaSui01/specform/render"
	"github.com/BaSui01/specform/specfile"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		runRender(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "version":
		fmt.Printf("specform %s (%s)\n", Version, GitCommit)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	specPath := fs.String("spec", "", "Path to the YAML spec file")
	model := fs.String("model", "gpt-4o", "Model used for the token estimate")
	tokens := fs.Bool("tokens", false, "Print a prompt token estimate to stderr")
	fs.Parse(args)

	s := loadSpec(*specPath)
	c := specform.New(s, specform.WithLogger(newLogger()), specform.WithModel(*model))

	block, err := c.Render()
	if err != nil {
		fatal("render spec: %v", err)
	}
	fmt.Println(block)
	if *tokens {
		fmt.Fprintf(os.Stderr, "~%d prompt tokens (%s)\n", render.TokenEstimate(block, *model), *model)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	specPath := fs.String("spec", "", "Path to the YAML spec file")
	inPath := fs.String("in", "", "Response file to decode (defaults to stdin)")
	fs.Parse(args)

	s := loadSpec(*specPath)
	c := specform.New(s, specform.WithLogger(newLogger()))

	text, err := readInput(*inPath)
	if err != nil {
		fatal("read response: %v", err)
	}

	data, err := c.Decode(text)
	if err != nil {
		fatal("decode response: %v", err)
	}

	out, err := c.Serialize(data)
	if err != nil {
		fatal("serialize result: %v", err)
	}
	fmt.Println(out)

	report := c.Validate(data)
	if !report.Valid {
		for _, e := range report.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(2)
	}
}

func loadSpec(path string) *specform.Spec {
	if path == "" {
		fatal("--spec is required")
	}
	s, err := specfile.LoadFile(path)
	if err != nil {
		fatal("%v", err)
	}
	return s
}

func readInput(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`specform - schema blocks for structured LLM output

Usage:
  specform render --spec <file.yaml> [--tokens] [--model <name>]
  specform decode --spec <file.yaml> [--in <response.txt>]
  specform version`)
}
