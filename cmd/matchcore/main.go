// Command matchcore drives the matching engine for a single trading pair:
// it reads CREATE/DELETE records from --input (or stdin), feeds them
// through the engine, and writes the resulting event stream to --output
// (or stdout).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchcore/internal/engine"
	"matchcore/internal/ingest"
	"matchcore/internal/sink"
)

func main() {
	pair := flag.String("pair", "BTC/USDC", "trading pair identifier")
	inputPath := flag.String("input", "", "path to a newline-delimited JSON record file; stdin if omitted")
	outputPath := flag.String("output", "", "path to write newline-delimited JSON events; stdout if omitted")
	verbose := flag.Bool("verbose", false, "log every engine event at debug level")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	os.Exit(run(*pair, *inputPath, *outputPath, *verbose))
}

func run(pair, inputPath, outputPath string, verbose bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	input, closeInput, err := openInput(inputPath)
	if err != nil {
		log.Error().Err(err).Str("path", inputPath).Msg("unable to open input")
		return 1
	}
	defer closeInput()

	output, closeOutput, err := openOutput(outputPath)
	if err != nil {
		log.Error().Err(err).Str("path", outputPath).Msg("unable to open output")
		return 1
	}
	defer closeOutput()

	var s sink.Sink = sink.NewJSONSink(output)
	if verbose {
		s = sink.NewLoggingSink(s)
	}

	eng := engine.New(pair)
	requests, parseErrs := ingest.Stream(ctx, input)

	exitCode := 0
drain:
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("matchcore: shutting down on signal")
			break drain
		case err, ok := <-parseErrs:
			if !ok {
				parseErrs = nil
				continue
			}
			log.Error().Err(err).Msg("matchcore: malformed record")
			exitCode = 1
		case request, ok := <-requests:
			if !ok {
				// The error channel is closed before the request channel,
				// so any parse error still buffered in it is read here.
				if parseErrs != nil {
					for err := range parseErrs {
						log.Error().Err(err).Msg("matchcore: malformed record")
						exitCode = 1
					}
				}
				break drain
			}
			events := eng.Process(ctx, request)
			if len(events) == 0 {
				continue
			}
			if err := s.Write(events); err != nil {
				log.Error().Err(err).Msg("matchcore: sink write failed")
				return 1
			}
		}
	}

	askCount, bidCount := eng.Orderbook().Len()
	log.Info().Str("pair", pair).Int("resting_asks", askCount).Int("resting_bids", bidCount).Msg("matchcore: done")
	return exitCode
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
