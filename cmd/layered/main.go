package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/tailored-agentic-units/layered/layered"
	"github.com/tailored-agentic-units/layered/observability"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const usage = "Usage: layered [-config <file>] -layer <file.json> [-layer <file.json> ...] get|has|keys|len|dump [key]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var layerFiles []string

	fs := flag.NewFlagSet("layered", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "Path to layered config JSON file")
	verbose := fs.Bool("verbose", false, "Enable verbose logging to stderr")
	fs.Func("layer", "JSON object file to stack as a layer; repeatable, first is highest priority", func(path string) error {
		layerFiles = append(layerFiles, path)
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if len(layerFiles) == 0 || fs.NArg() == 0 {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
		return 2
	}

	cfg := layered.DefaultConfig()
	if *configFile != "" {
		loaded, err := layered.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return 1
		}
		cfg = *loaded
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slogObserver := observability.NewSlogObserver(logger)
	observability.RegisterObserver("slog", slogObserver)

	layers := make([]layered.Layer[string, *structpb.Value], 0, len(layerFiles))
	for _, path := range layerFiles {
		s, err := readLayer(path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read layer: %v\n", err)
			return 1
		}
		layers = append(layers, layered.StructLayer(s))
	}

	m, err := layered.FromConfig(&cfg, layers...)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create layered map: %v\n", err)
		return 1
	}

	// -verbose always logs, even when the config routes events elsewhere.
	if *verbose && cfg.Observer != "slog" {
		configured, err := observability.GetObserver(cfg.Observer)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve observer: %v\n", err)
			return 1
		}
		m.SetObserver(observability.NewMultiObserver(configured, slogObserver))
	}

	if err := execute(m, fs.Args(), stdout); err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, layered.ErrKeyNotFound) {
			return 1
		}
		return 2
	}
	return 0
}

func readLayer(path string) (*structpb.Struct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := layered.DecodeStruct(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func execute(m *layered.Map[string, *structpb.Value], args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "get", "has":
		if len(rest) != 1 {
			return fmt.Errorf("%s requires exactly one key", cmd)
		}
		if cmd == "has" {
			fmt.Fprintln(out, m.Has(rest[0]))
			return nil
		}
		v, err := m.Get(rest[0])
		if err != nil {
			return err
		}
		data, err := protojson.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode value: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "keys":
		for _, key := range slices.Sorted(m.Keys()) {
			fmt.Fprintln(out, key)
		}
	case "len":
		fmt.Fprintln(out, m.Len())
	case "dump":
		data, err := protojson.MarshalOptions{Multiline: true}.Marshal(layered.ToStruct(m))
		if err != nil {
			return fmt.Errorf("encode view: %w", err)
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}
