// Command protoview prints the fields of a wire-format payload read from
// a file or stdin.
//
//	protoview [-config protoview.toml] [-proto person.proto -message Person] [-format text|json] [file|-]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/anirudhraja/protoview"
	"github.com/anirudhraja/protoview/internal/config"
	"github.com/anirudhraja/protoview/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "protoview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("protoview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file")
	protoFile := fs.String("proto", "", ".proto file supplying field labels")
	messageType := fs.String("message", "", "message type used to label fields (requires -proto)")
	format := fs.String("format", "text", "output format: text or json")
	listMessages := fs.Bool("list", false, "list messages in -proto and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := logging.New("protoview", stderr, cfg.Log)

	pv := protoview.New(cfg.ProtoPaths,
		protoview.WithLogger(logger),
		protoview.WithDecodeOptions(cfg.DecodeOptions()...),
	)
	if *protoFile != "" {
		if err := pv.LoadSchemaFromFile(*protoFile); err != nil {
			return err
		}
	}
	if *listMessages {
		for _, name := range pv.ListMessages() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}
	if *messageType != "" && *protoFile == "" {
		return errors.New("-message requires -proto")
	}

	data, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	logger.Debug().Int("bytes", len(data)).Str("format", *format).Msg("decoding payload")

	switch *format {
	case "text":
		return pv.Dump(stdout, data, *messageType)
	case "json":
		fields, err := pv.Parse(data)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	default:
		return errors.Errorf("unknown format %q", *format)
	}
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "read stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "read %s", path)
}
