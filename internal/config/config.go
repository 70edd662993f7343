package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

const (
	defPort = `3000`
	envPort = `PORT`
)
const (
	defRoot = `/tmp/files`
	envRoot = `TMPFILES_ROOT`
)
const (
	envCtrlAddress = `TMPFILES_CTRL`
)

type Config struct {
	Http            string
	Root            string
	Ctrl            string
	CtrlLogger      bool
	LogLevel        string
	Prometheus      bool
	Compression     int
	TimeoutIdle     time.Duration
	TimeoutRead     time.Duration
	TimeoutWrite    time.Duration
	TimeoutShutdown time.Duration
}

// Load parses args, then fills anything left empty from getenv and the
// defaults in that order.
func Load(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	flags := flag.NewFlagSet(`tmpfiles`, flag.ContinueOnError)
	if output != nil {
		flags.SetOutput(output)
	}
	config := Config{}
	flags.StringVar(&config.Http, `http`, ``, `specifies the bind address for the http service (default ":$PORT")`)
	flags.StringVar(&config.Root, `root`, ``, `specifies the directory holding the files`)
	flags.StringVar(&config.Ctrl, `ctrl`, ``, `specifies the bind address for the ctrl service`)
	flags.BoolVar(&config.CtrlLogger, `ctrl-logger`, false, `enable ctrl logging`)
	flags.StringVar(&config.LogLevel, `log-level`, `info`, `specifies the logging level`)
	flags.BoolVar(&config.Prometheus, `prometheus`, false, `enable prometheus`)
	flags.IntVar(&config.Compression, `compression`, 5, `specifies the compression level, negative to disable`)
	flags.DurationVar(&config.TimeoutIdle, `timeout-idle`, 5*time.Second, `specifies the request idle timeout duration`)
	flags.DurationVar(&config.TimeoutRead, `timeout-read`, 10*time.Second, `specifies the request read timeout duration`)
	flags.DurationVar(&config.TimeoutWrite, `timeout-write`, 60*time.Second, `specifies the response write timeout duration`)
	flags.DurationVar(&config.TimeoutShutdown, `timeout-shutdown`, 5*time.Second, `specifies the shutdown timeout`)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	first := func(list ...string) string {
		for _, value := range list {
			if value != `` {
				return value
			}
		}
		return ``
	}

	config.Http = first(config.Http, `:`+first(getenv(envPort), defPort))
	config.Root = first(config.Root, getenv(envRoot), defRoot)
	config.Ctrl = first(config.Ctrl, getenv(envCtrlAddress))

	if config.Compression > 9 {
		return Config{}, fmt.Errorf(`-compression %d out of range`, config.Compression)
	}
	return config, nil
}

func (config Config) CtrlEnabled() bool {
	return config.Ctrl != ``
}
