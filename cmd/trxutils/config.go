package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/julianneswinoga/tracex-parser/pkg/customevents"
	"github.com/julianneswinoga/tracex-parser/pkg/events"
	"github.com/julianneswinoga/tracex-parser/pkg/tracex"
	"github.com/peterbourgon/ff/v3"
	"github.com/rs/zerolog"
)

// envPrefix is the prefix of environment variables that set flags, e.g.
// TRXUTILS_LOG_LEVEL=debug.
const envPrefix = "TRXUTILS"

// rootConfig holds the flags shared by all commands.
type rootConfig struct {
	stdout io.Writer
	stderr io.Writer

	verbosity  verbosity
	logLevel   string
	eventsPath string
	anonymize  bool

	cpuProfile string
	trace      string
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.Var(&c.verbosity, "v", "verbosity, repeat for more: -v adds an event histogram, -vv lists all events")
	fs.Var(verbosityStep{v: &c.verbosity, n: 2}, "vv", "same as -v -v")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&c.eventsPath, "events", "", "JSON file with custom event definitions")
	fs.BoolVar(&c.anonymize, "anonymize", false, "obfuscate object names")
	fs.StringVar(&c.cpuProfile, "cpuprofile", "", "write cpu profile of trxutils to file")
	fs.StringVar(&c.trace, "trace", "", "write execution trace of trxutils to file")
}

// options returns the decode options selected by the flags.
func (c *rootConfig) options() (tracex.Options, error) {
	log, err := newLogger(c.stderr, c.logLevel)
	if err != nil {
		return tracex.Options{}, err
	}
	var custom events.Map
	if c.eventsPath != "" {
		if custom, err = customevents.Load(c.eventsPath); err != nil {
			return tracex.Options{}, err
		}
	}
	return tracex.Options{Custom: custom, Logger: &log, Anonymize: c.anonymize}, nil
}

// loadTrace reads a single trace file for a subcommand.
func (c *rootConfig) loadTrace(path string) (*tracex.Trace, error) {
	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	return tracex.ReadFile(path, opts)
}

// newLogger returns a human readable logger writing to w.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("bad log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(lvl), nil
}

// verbosity counts the -v flags given. An explicit value as in -v=2,
// TRXUTILS_V=2 or "v 2" in a config file sets it directly.
type verbosity int

func (v *verbosity) String() string {
	if v == nil {
		return "0"
	}
	return strconv.Itoa(int(*v))
}

func (v *verbosity) Set(s string) error {
	switch s {
	case "true":
		*v++
		return nil
	case "false":
		*v = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("bad verbosity %q", s)
	}
	*v = verbosity(n)
	return nil
}

func (v *verbosity) IsBoolFlag() bool { return true }

// verbosityStep raises a verbosity by n each time it is given.
type verbosityStep struct {
	v *verbosity
	n int
}

func (s verbosityStep) String() string { return "" }

func (s verbosityStep) Set(value string) error {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("bad flag value %q", value)
	}
	if on {
		*s.v += verbosity(s.n)
	}
	return nil
}

func (s verbosityStep) IsBoolFlag() bool { return true }

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// subcommandOptions lets environment variables set subcommand flags too.
func subcommandOptions() []ff.Option {
	return []ff.Option{ff.WithEnvVarPrefix(envPrefix)}
}
