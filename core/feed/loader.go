package feed

import (
	"context"
	"strings"

	"shopify-sync/core/reconcile"
	"shopify-sync/core/storage"

	"golang.org/x/sync/errgroup"
)

// DefaultFanout bounds concurrent feed downloads.
const DefaultFanout = 4

// File is a feed file fetched from the file store and parsed.
type File struct {
	// Path is the object key of the file.
	Path string

	// Rows are the valid records.
	Rows []Row

	// Warnings are the rows dropped during parsing.
	Warnings []reconcile.Warning

	// Err is set when the file as a whole could not be parsed (bad header).
	// The file is left in place for the operator.
	Err error
}

// LoadDirectory lists dir, then fetches and parses every regular .csv file
// concurrently with at most fanout downloads in flight. Files are returned in
// listing order. A list or fetch failure aborts with a RemoteServiceError; a
// parse failure is recorded on the File.
func LoadDirectory(ctx context.Context, files storage.FileStore, dir string, schema Schema, fanout int) ([]File, error) {
	entries, err := files.List(ctx, dir)
	if err != nil {
		return nil, reconcile.NewRemoteServiceError("list "+dir, err)
	}

	var paths []string
	for _, e := range entries {
		if IsCSV(e) {
			paths = append(paths, e.Path)
		}
	}
	if len(paths) == 0 {
		return nil, nil
	}

	if fanout <= 0 {
		fanout = DefaultFanout
	}

	out := make([]File, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanout)
	for i, p := range paths {
		g.Go(func() error {
			data, err := files.Get(gctx, p)
			if err != nil {
				return reconcile.NewRemoteServiceError("get "+p, err)
			}
			rows, warnings, err := Parse(data, schema)
			out[i] = File{Path: p, Rows: rows, Warnings: warnings, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsCSV reports whether a listing entry is a regular file with a .csv extension.
func IsCSV(e storage.Entry) bool {
	return e.Type == storage.TypeFile && strings.HasSuffix(strings.ToLower(e.Name), ".csv")
}
