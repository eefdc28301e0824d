// Command udf-convert decodes BME UDF sensor logs and exports them as CSV,
// canonical .bmerawdata JSON, or HTML chart reports, optionally ingesting
// decoded records into a SQLite store.
//
// Usage:
//
//	udf-convert [flags] file.udf
//	udf-convert -dir /path/to/captures -format rawdata
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mcalisterkm/bme-converter/internal/convert"
	"github.com/mcalisterkm/bme-converter/internal/store"
	"github.com/mcalisterkm/bme-converter/internal/version"
)

var (
	dir         = flag.String("dir", "", "Batch convert all .udf files in this directory")
	format      = flag.String("format", convert.FormatRawdata, "Output format: csv, rawdata or report")
	output      = flag.String("o", "", "Output file path (single-file mode only)")
	configPath  = flag.String("config", "", "Path to BoardConfiguration.bmeconfig (auto-detected if empty)")
	labelPath   = flag.String("labelinfo", "", "Path to .bmelabelinfo file (auto-detected if empty)")
	dbPath      = flag.String("db", "", "Also ingest decoded records into this SQLite database")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("udf-convert %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	opts := convert.Options{
		Format:        *format,
		OutputPath:    *output,
		ConfigPath:    *configPath,
		LabelInfoPath: *labelPath,
	}

	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer db.Close()
		opts.Store = db
	}

	conv := convert.New()

	if *dir != "" {
		runBatch(conv, *dir, opts)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	res := conv.ConvertFile(flag.Arg(0), opts)
	if res.Err != nil {
		log.Fatalf("conversion failed: %v", res.Err)
	}
	log.Printf("converted %d records: %s -> %s", res.Records, res.Input, res.Output)
	if res.BatchID != "" {
		log.Printf("ingested batch %s into %s", res.BatchID, *dbPath)
	}
}

func runBatch(conv *convert.Converter, dir string, opts convert.Options) {
	results, err := conv.ConvertDir(dir, opts)
	if err != nil {
		log.Fatalf("batch conversion failed: %v", err)
	}

	succeeded, failed := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		succeeded++
		log.Printf("converted %d records: %s -> %s", res.Records, res.Input, res.Output)
	}

	log.Printf("batch complete: %d succeeded, %d failed", succeeded, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
