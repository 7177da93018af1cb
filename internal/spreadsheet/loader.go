package spreadsheet

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// File is a spreadsheet read from disk
type File struct {
	Path string
	Data []byte
}

// LoadFiles reads every path concurrently. Results keep the input order and
// the first failure cancels the remaining reads.
func LoadFiles(ctx context.Context, paths []string) ([]File, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files provided")
	}

	files := make([]File, len(paths))
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to load file %d: %w", i+1, err)
			}
			files[i] = File{Path: path, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
