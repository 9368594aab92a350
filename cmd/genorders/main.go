// Command genorders writes a synthetic stream of CREATE/DELETE records to
// a file, for feeding into matchcore as a load-test fixture. It mirrors
// the original orders_generator binary's role, generalized to the JSON
// record format matchcore's ingest layer consumes.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"matchcore/internal/bench"
)

func main() {
	pair := flag.String("pair", "BTC/USDC", "trading pair identifier")
	count := flag.Int("count", 5_000_000, "number of records to generate")
	seed := flag.Int64("seed", 1, "RNG seed, for reproducible runs")
	accounts := flag.Int("accounts", 9, "size of the synthetic account pool")
	outputPath := flag.String("output", "./orders.json", "path to write the generated record stream")
	flag.Parse()

	f, err := os.Create(*outputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outputPath).Msg("genorders: unable to create output file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	g := bench.NewGenerator(*pair, *seed, *accounts)
	enc := json.NewEncoder(w)

	for i := 0; i < *count; i++ {
		record := bench.Record(g.Next())
		if err := enc.Encode(record); err != nil {
			log.Fatal().Err(err).Msg("genorders: failed writing record")
		}
	}

	log.Info().
		Str("run_id", g.RunID.String()).
		Int("count", *count).
		Str("output", *outputPath).
		Msg("genorders: generation complete")
}
