// Package convert orchestrates single-file and batch UDF conversion: decode,
// companion-file discovery, and export in the requested format.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mcalisterkm/bme-converter/internal/export"
	"github.com/mcalisterkm/bme-converter/internal/fsutil"
	"github.com/mcalisterkm/bme-converter/internal/monitoring"
	"github.com/mcalisterkm/bme-converter/internal/rawdata"
	"github.com/mcalisterkm/bme-converter/internal/store"
	"github.com/mcalisterkm/bme-converter/internal/udf"
)

// Output formats.
const (
	FormatCSV     = "csv"     // descriptor-driven decode, generic columns
	FormatRawdata = "rawdata" // fixed-offset decode, .bmerawdata JSON
	FormatReport  = "report"  // fixed-offset decode, HTML charts
)

var outputExt = map[string]string{
	FormatCSV:     ".csv",
	FormatRawdata: ".bmerawdata",
	FormatReport:  ".html",
}

// Options configures one conversion.
type Options struct {
	Format        string // FormatCSV, FormatRawdata or FormatReport
	OutputPath    string // defaults to the input path with the format's extension
	ConfigPath    string // board configuration; auto-detected when empty
	LabelInfoPath string // label info; auto-detected when empty

	// Store, when non-nil, also ingests the decoded canonical rows.
	Store *store.Store
}

// Result reports one file's conversion.
type Result struct {
	Input   string
	Output  string
	Records int
	BatchID string // set when ingested into a store
	Err     error
}

// Converter converts UDF files through an abstract filesystem so batch runs
// are testable in memory.
type Converter struct {
	FS fsutil.FileSystem
}

// New returns a Converter over the OS filesystem.
func New() *Converter {
	return &Converter{FS: fsutil.OSFileSystem{}}
}

// ConvertFile converts one UDF file. Structural failures (unreadable file,
// missing delimiter, undetectable framing without fallback) are fatal for the
// file and land in Result.Err; record-level anomalies are recovered during
// decoding and never fail the conversion.
func (c *Converter) ConvertFile(path string, opts Options) Result {
	res := Result{Input: path}

	if opts.Format == "" {
		opts.Format = FormatRawdata
	}
	ext, ok := outputExt[opts.Format]
	if !ok {
		res.Err = fmt.Errorf("convert: unknown format %q", opts.Format)
		return res
	}
	res.Output = opts.OutputPath
	if res.Output == "" {
		res.Output = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}

	raw, err := c.FS.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("convert: read %s: %w", path, err)
		return res
	}
	file, err := udf.Split(raw)
	if err != nil {
		res.Err = fmt.Errorf("convert: %s: %w", path, err)
		return res
	}

	framing, err := udf.MarkerScan{}.Frame(file.Payload)
	if errors.Is(err, udf.ErrNoFraming) {
		// Best-effort mode: fall back to the one characterised board layout
		// rather than abort. The fallback is explicit and logged, never a
		// silent default.
		monitoring.Logf("convert: %s: marker scan failed, using board_690 framing", path)
		framing, err = udf.Board690Framing.Frame(file.Payload)
	}
	if err != nil {
		res.Err = fmt.Errorf("convert: %s: %w", path, err)
		return res
	}

	switch opts.Format {
	case FormatCSV:
		res.Err = c.writeCSV(file, framing, &res)
	case FormatRawdata, FormatReport:
		res.Err = c.writeCanonical(file, framing, opts, &res)
	}
	return res
}

func (c *Converter) writeCSV(file *udf.File, framing udf.Framing, res *Result) error {
	dec := udf.NewDecoder(file.Fields, framing)
	records := dec.Decode(file.Payload)
	res.Records = len(records)

	var buf bytes.Buffer
	if err := export.WriteRecordsCSV(&buf, dec.Keys(), records); err != nil {
		return err
	}
	return c.FS.WriteFile(res.Output, buf.Bytes(), 0o644)
}

func (c *Converter) writeCanonical(file *udf.File, framing udf.Framing, opts Options, res *Result) error {
	rows, _ := udf.DecodeBoard690(file.Payload, framing)
	res.Records = len(rows)

	cfg, li, err := c.loadCompanions(res.Input, opts)
	if err != nil {
		return err
	}

	if opts.Store != nil {
		batchID, err := opts.Store.InsertBatch(res.Input, rawdata.HeaderFrom(li).BoardID, rows)
		if err != nil {
			return err
		}
		res.BatchID = batchID
	}

	var buf bytes.Buffer
	switch opts.Format {
	case FormatReport:
		rep := export.Report{Title: filepath.Base(res.Input)}
		if li != nil {
			rep.Labels = li.Lookup()
		}
		if err := rep.Render(&buf, rows); err != nil {
			return err
		}
	default:
		doc := rawdata.Build(cfg, li, rows)
		data, err := doc.Marshal()
		if err != nil {
			return fmt.Errorf("convert: marshal rawdata: %w", err)
		}
		buf.Write(data)
	}
	return c.FS.WriteFile(res.Output, buf.Bytes(), 0o644)
}

// loadCompanions resolves the board configuration and label-info files. The
// configuration is required for the rawdata format (its sections pass through
// verbatim); label info is optional and only warns when absent.
func (c *Converter) loadCompanions(udfPath string, opts Options) (*rawdata.BoardConfig, *rawdata.LabelInfo, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = rawdata.FindBoardConfig(udfPath, c.FS.Exists)
	}

	var cfg *rawdata.BoardConfig
	if cfgPath != "" {
		data, err := c.FS.ReadFile(cfgPath)
		if err != nil {
			return nil, nil, fmt.Errorf("convert: read config %s: %w", cfgPath, err)
		}
		cfg, err = rawdata.ParseBoardConfig(data)
		if err != nil {
			return nil, nil, fmt.Errorf("convert: %s: %w", cfgPath, err)
		}
	} else if opts.Format == FormatRawdata {
		return nil, nil, fmt.Errorf("convert: no %s found for %s", rawdata.ConfigFileName, udfPath)
	} else {
		cfg = &rawdata.BoardConfig{}
	}

	liPath := opts.LabelInfoPath
	if liPath == "" {
		liPath = rawdata.FindLabelInfo(udfPath, c.FS.Exists)
	}
	var li *rawdata.LabelInfo
	if liPath != "" {
		data, err := c.FS.ReadFile(liPath)
		if err != nil {
			return nil, nil, fmt.Errorf("convert: read labelinfo %s: %w", liPath, err)
		}
		li, err = rawdata.ParseLabelInfo(data)
		if err != nil {
			return nil, nil, fmt.Errorf("convert: %s: %w", liPath, err)
		}
	} else {
		monitoring.Logf("convert: no label info found for %s", udfPath)
	}

	return cfg, li, nil
}

// ConvertDir converts every *.udf file directly under dir. One bad file never
// halts the batch; its Result carries the error and the loop continues.
func (c *Converter) ConvertDir(dir string, opts Options) ([]Result, error) {
	matches, err := c.FS.Glob(dir, "*.udf")
	if err != nil {
		return nil, fmt.Errorf("convert: scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("convert: no .udf files in %s", dir)
	}

	results := make([]Result, 0, len(matches))
	for _, path := range matches {
		perFile := opts
		perFile.OutputPath = "" // derive from each input
		res := c.ConvertFile(path, perFile)
		if res.Err != nil {
			monitoring.Logf("convert: %s: %v", path, res.Err)
		}
		results = append(results, res)
	}
	return results, nil
}
