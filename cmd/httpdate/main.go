package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/always-cache/httpdate"
	dateserver "github.com/always-cache/httpdate/pkg/date-server"
	samplestore "github.com/always-cache/httpdate/pkg/sample-store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	configFilenameFlag string
	portFlag           int
	dbFilenameFlag     string
	pivotFlag          int
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

var errUnparseable = errors.New("some values could not be parsed")

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to config file")
	flag.IntVar(&portFlag, "port", 0, "Port to listen on (overrides config, default 8080)")
	flag.StringVar(&dbFilenameFlag, "db", "", "Sample DB file name (use 'memory' for in-memory db)")
	flag.IntVar(&pivotFlag, "pivot", 0, "Two-digit year pivot (overrides config)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stderr)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] parse VALUE... | format [UNIX|RFC3339]... | serve\n", os.Args[0])
		flag.PrintDefaults()
	}

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()
	os.Exit(run(flag.Args()))
}

// run executes the command in args and returns the process exit code.
// Resources are released before returning, so callers may exit right away.
func run(args []string) int {
	config := Config{}
	if configFilenameFlag != "" {
		var err error
		if config, err = getConfig(configFilenameFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot read config: %v\n", err)
			return 2
		}
	}
	applyFlags(&config)

	setupLogging(config)

	codec := httpdate.New(httpdate.Config{Pivot: config.Pivot})

	var store samplestore.Store
	if config.DB != "" {
		sqlite, err := samplestore.NewSQLiteStore(config.DB)
		if err != nil {
			log.Error().Err(err).Msg("Cannot open sample db")
			return 1
		}
		defer func() {
			if err := sqlite.Close(); err != nil {
				log.Error().Err(err).Msg("Cannot close sample db")
			}
		}()
		store = sqlite
	}

	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "parse":
		err = parseCommand(codec, store, args, os.Stdout)
	case "format":
		err = formatCommand(codec, args, os.Stdout)
	case "serve":
		err = serve(config, codec, store)
	default:
		flag.Usage()
		return 2
	}

	if errors.Is(err, errUnparseable) {
		return 1
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("Command failed")
		return 1
	}
	return 0
}

// applyFlags overrides config values with flags that were set.
func applyFlags(config *Config) {
	if portFlag != 0 {
		config.Listen = fmt.Sprintf(":%d", portFlag)
	}
	if config.Listen == "" {
		config.Listen = ":8080"
	}
	if dbFilenameFlag != "" {
		config.DB = dbFilenameFlag
	}
	if pivotFlag != 0 {
		config.Pivot = pivotFlag
	}
	if logFilenameFlag != "" {
		config.LogFile = logFilenameFlag
	}
}

func setupLogging(config Config) {
	// set log level
	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}

	// log to stderr, stdout is for command output
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stderr})
	if config.LogFile != "" {
		if logFileOutput, err := os.OpenFile(config.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()
}

// parseCommand prints the canonical form and matching format of each value.
// Values are recorded in the store if there is one.
func parseCommand(codec *httpdate.Codec, store samplestore.Store, values []string, out io.Writer) error {
	failed := false
	for _, value := range values {
		sample := samplestore.NewSample(codec, value, time.Now())
		if store != nil {
			if err := store.Record(sample); err != nil {
				log.Error().Err(err).Str("value", value).Msg("Could not record sample")
			}
		}
		if !sample.Parseable() {
			failed = true
			fmt.Fprintln(out, "unparseable")
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", sample.Parsed, sample.Format)
	}
	if failed {
		return errUnparseable
	}
	return nil
}

// formatCommand prints each Unix timestamp or RFC 3339 time as an HTTP date.
// Without arguments, the current time is formatted.
func formatCommand(codec *httpdate.Codec, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, codec.Format(time.Now()))
		return nil
	}
	for _, arg := range args {
		t, err := parseTimeArg(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, codec.Format(t))
	}
	return nil
}

func parseTimeArg(arg string) (time.Time, error) {
	if seconds, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return time.Unix(seconds, 0), nil
	}
	t, err := time.Parse(time.RFC3339, arg)
	if err != nil {
		return t, fmt.Errorf("%q is neither a Unix timestamp nor an RFC 3339 time", arg)
	}
	return t, nil
}

func serve(config Config, codec *httpdate.Codec, store samplestore.Store) error {
	server := dateserver.CreateServer(dateserver.Config{
		Codec:  codec,
		Store:  store,
		Shared: config.shared(),
		Logger: &log.Logger,
	})
	log.Info().
		Str("listen", config.Listen).
		Int("pivot", codec.Pivot()).
		Bool("samples", store != nil).
		Msg("Serving HTTP date API")
	return http.ListenAndServe(config.Listen, server)
}
