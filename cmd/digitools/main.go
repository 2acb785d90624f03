package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
)

var (
	configFlag  = flag.String("c", "", "The path to a TOML config file")
	verboseFlag = flag.Bool("v", false, "Enable debug logging")
	outFlag     = flag.String("o", "", "Output directory for split")
	markFlag    = flag.String("mark", "", "Cell text for set tags in exported CSV files")
	listFlag    = flag.String("l", "", "The path to the list of SysEx files for scan,\nfind . -type f -name \"*.syx\" > syx_list.txt")
	workersFlag = flag.Int("p", 0, "Number of files processed in parallel by scan, must be > 0")
)

const usage = `Usage: %s [flags] <command> [args]

Commands:
  print  <file.syx>              print number, name and tags of every sound
  export <file.syx> [file.csv]   write names and tags to CSV
  update <file.syx> [file.csv]   apply names and tags from CSV
  decode <file.syx> <out.bin>    write the decoded sound data
  split  <file.syx>              write every message to NNN.syx
  scan   -l <list.txt>           load many SysEx files in parallel

Flags:
`

// buildConfig applies the config file and then the flags set on the
// command line.
func buildConfig() (config, error) {
	cfg := defaultConfig()

	if *configFlag != "" {
		var err error
		if cfg, err = loadConfig(*configFlag, cfg); err != nil {
			return config{}, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Debug = *verboseFlag
		case "o":
			cfg.OutputDir = *outFlag
		case "mark":
			cfg.Mark = *markFlag
		case "p":
			cfg.Workers = *workersFlag
		case "l":
			cfg.List = *listFlag
		}
	})

	return cfg, validateConfig(cfg)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func run(cfg config, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	command, syx := args[0], arg(args, 1)
	if command != "scan" && syx == "" {
		return fmt.Errorf("%w: %s needs a SysEx file", errUsage, command)
	}

	switch command {
	case "print":
		return printSounds(syx, w)
	case "export":
		return exportSounds(cfg, syx, arg(args, 2), w)
	case "update":
		return updateSounds(syx, arg(args, 2), w)
	case "decode":
		return decodeSounds(syx, arg(args, 2), w)
	case "split":
		return splitMessages(cfg, syx, w)
	case "scan":
		if cfg.List == "" {
			return fmt.Errorf("%w: scan needs -l", errUsage)
		}
		f, err := os.Open(cfg.List)
		if err != nil {
			return err
		}
		defer f.Close()
		return scanFiles(context.Background(), cfg, f, w)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		log.Fatal(err)
	}

	l := zap.NewNop()
	if cfg.Debug {
		if l, err = zap.NewDevelopment(); err != nil {
			log.Fatal(err)
		}
		enableDebugLogging(l)
	}

	err = run(cfg, flag.Args(), os.Stdout)
	_ = l.Sync()

	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	case err != nil:
		log.Println("Error:", err)
		os.Exit(1)
	}
}
