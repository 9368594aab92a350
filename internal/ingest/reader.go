package ingest

import (
	"bufio"
	"context"
	"io"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"matchcore/internal/engine"
)

// Stream reads newline-delimited JSON records from r in a tomb-supervised
// goroutine, parsing each into an engine.Request and emitting it on the
// returned channel. It terminates cleanly on EOF or context cancellation,
// closing both channels before returning. A parse error on one line is
// reported on the error channel but does not stop the stream: later
// records still arrive. A read error ends the stream and is reported on the
// error channel as well.
func Stream(ctx context.Context, r io.Reader) (<-chan engine.Request, <-chan error) {
	requests := make(chan engine.Request)
	errs := make(chan error, 1)

	t, ctx := tomb.WithContext(ctx)
	t.Go(func() error {
		defer close(requests)
		defer close(errs)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case <-t.Dying():
				return nil
			default:
			}

			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			request, err := ParseRecord(line)
			if err != nil {
				log.Error().Err(err).Msg("ingest: dropping malformed record")
				select {
				case errs <- err:
				case <-t.Dying():
					return nil
				}
				continue
			}

			select {
			case requests <- request:
			case <-t.Dying():
				return nil
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case errs <- err:
			case <-t.Dying():
			}
			return err
		}
		return nil
	})

	return requests, errs
}
