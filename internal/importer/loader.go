package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/findash/internal/model"
)

// Source is one input stream and the file name used for provenance.
type Source struct {
	Name   string
	Reader io.Reader
}

// FileSummary describes a file that loaded successfully.
type FileSummary struct {
	Name    string
	Profile string
	Rows    int
	Dropped int
}

// LoadResult is the combined ledger of a batch plus per-file outcomes.
type LoadResult struct {
	Transactions []model.Transaction // sorted by date ascending
	Files        []FileSummary
	Warnings     []FileWarning
	Dropped      int
}

type fileOutcome struct {
	summary FileSummary
	txns    []model.Transaction
	err     error
}

// Load normalizes every source independently, in parallel. A file that
// fails is recorded as a warning and left out; Load fails with
// NoValidDataError only when no file succeeds. The combined ledger is
// assembled in source order and stably sorted by date, so the result does
// not depend on which file finished first.
func Load(reg *Registry, sources []Source) (*LoadResult, error) {
	outcomes := make([]fileOutcome, len(sources))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			outcomes[i] = normalizeSource(reg, src)
			return nil
		})
	}
	// Per-file failures are kept in outcomes; the goroutines never fail.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &LoadResult{}
	for i, o := range outcomes {
		if o.err != nil {
			res.Warnings = append(res.Warnings, FileWarning{File: sources[i].Name, Err: o.err})
			continue
		}
		res.Files = append(res.Files, o.summary)
		res.Transactions = append(res.Transactions, o.txns...)
		res.Dropped += o.summary.Dropped
	}

	if len(res.Files) == 0 {
		return nil, &NoValidDataError{Warnings: res.Warnings}
	}

	sort.SliceStable(res.Transactions, func(a, b int) bool {
		return res.Transactions[a].Date.Before(res.Transactions[b].Date)
	})
	return res, nil
}

// NormalizeFile detects the profile of one source and normalizes it.
func NormalizeFile(reg *Registry, src Source) (FileSummary, []model.Transaction, error) {
	o := normalizeSource(reg, src)
	return o.summary, o.txns, o.err
}

func normalizeSource(reg *Registry, src Source) fileOutcome {
	t, err := ReadTable(src.Name, src.Reader)
	if err != nil {
		return fileOutcome{err: err}
	}
	if len(t.Records) == 0 {
		return fileOutcome{err: fmt.Errorf("%s is empty", src.Name)}
	}

	p, ok := reg.Detect(t)
	if !ok {
		return fileOutcome{err: &FormatDetectionError{File: src.Name, Columns: t.Header()}}
	}

	txns, dropped, err := p.Normalize(t)
	if err != nil {
		return fileOutcome{err: fmt.Errorf("normalizing %s as %s: %w", src.Name, p.Name(), err)}
	}

	return fileOutcome{
		summary: FileSummary{Name: src.Name, Profile: p.Name(), Rows: len(txns), Dropped: dropped},
		txns:    txns,
	}
}

// LoadDir loads every CSV file directly inside dir. A missing directory is
// fatal; unreadable files become warnings like any other per-file failure.
func LoadDir(reg *Registry, dir string) (*LoadResult, error) {
	files, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &NoValidDataError{Dir: dir}
	}

	var sources []Source
	var unreadable []FileWarning
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			unreadable = append(unreadable, FileWarning{File: f.Name, Err: err})
			continue
		}
		sources = append(sources, Source{Name: f.Name, Reader: bytes.NewReader(data)})
	}

	res, err := Load(reg, sources)
	if err != nil {
		var nv *NoValidDataError
		if errors.As(err, &nv) {
			nv.Dir = dir
			nv.Warnings = append(unreadable, nv.Warnings...)
		}
		return nil, err
	}
	res.Warnings = append(unreadable, res.Warnings...)
	return res, nil
}
