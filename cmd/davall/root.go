package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/boppreh/davall/internal/dav"
)

// defaultPort is the documented constant spec.md §6 requires when
// -p/--port is not given.
const defaultPort = 8080

// exitError pairs a failure with the exit code spec.md §6 assigns it:
// 1 for a configuration error (bad arguments, unknown type), 2 for a
// backend construction failure or a listener that never came up.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configError(format string, args ...any) error {
	return &exitError{code: 1, err: fmt.Errorf(format, args...)}
}

func backendError(err error) error {
	return &exitError{code: 2, err: err}
}

// run builds and executes the root command, translating its outcome
// into the process exit code.
func run(args []string) int {
	var port int
	var host, typ string

	cmd := &cobra.Command{
		Use:           "davall [file]",
		Short:         "Serve a structured data file as a read-only WebDAV tree.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, cmdArgs []string) error {
			var file string
			if len(cmdArgs) > 0 {
				file = cmdArgs[0]
			}
			return serve(file, typ, host, port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", defaultPort, "port to listen on")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "host/interface to bind")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "backend type, overriding extension-based detection")
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.err)
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// serve resolves the backend type, constructs it, and runs the HTTP
// server until the listener dies or the process is killed.
func serve(file, typ, host string, port int) error {
	adapterType := typ
	if adapterType == "" {
		if file == "" {
			return configError("a file argument is required unless --type osinfo is given")
		}
		t, ok := extensionTag(file)
		if !ok {
			return configError("no backend type for the extension of %q; pass -t/--type", file)
		}
		adapterType = t
	} else if !knownTags[adapterType] {
		return configError("unknown backend type %q", adapterType)
	}
	if adapterType != "osinfo" && file == "" {
		return configError("a file argument is required for backend type %q", adapterType)
	}

	b, err := openBackend(adapterType, file)
	if err != nil {
		return backendError(err)
	}
	defer b.Close()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	addr := fmt.Sprintf("%s:%d", host, port)
	logger.Info().Str("addr", addr).Str("type", adapterType).Str("file", file).Msg("serving")

	handler := dav.New(b, logger)
	if err := http.ListenAndServe(addr, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("listener exited")
		return backendError(err)
	}
	return nil
}
