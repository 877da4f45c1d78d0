package core

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/smarty/plugpack/contracts"
	"github.com/smarty/plugpack/logger"
)

// PackageScanner inspects every package file below a plugins directory.
type PackageScanner struct {
	fileSystem  afero.Fs
	inspector   contracts.Inspector
	extension   string
	concurrency int
	logger      logrus.FieldLogger
}

func NewPackageScanner(fileSystem afero.Fs, inspector contracts.Inspector, extension string, concurrency int) *PackageScanner {
	if extension == "" {
		extension = contracts.DefaultPackageExtension
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &PackageScanner{
		fileSystem:  fileSystem,
		inspector:   inspector,
		extension:   extension,
		concurrency: concurrency,
		logger:      logger.L,
	}
}

// Scan returns one report per package file, sorted by path. The first I/O
// error, or the cancellation of ctx, aborts the scan.
func (this *PackageScanner) Scan(ctx context.Context, directory string) ([]contracts.Report, error) {
	paths, err := this.find(directory)
	if err != nil {
		return nil, err
	}

	reports := make([]contracts.Report, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(this.concurrency)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := this.inspector.Inspect(path)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	this.logger.WithFields(logrus.Fields{
		"directory": directory,
		"packages":  len(reports),
	}).Debug("Plugins directory scanned.")
	return reports, nil
}

func (this *PackageScanner) find(directory string) ([]string, error) {
	root, err := filepath.Abs(directory)
	if err != nil {
		return nil, errors.Wrap(err, "resolve plugins directory")
	}
	info, err := this.fileSystem.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "stat plugins directory")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("not a directory: %s", root)
	}

	tree := afero.NewIOFS(afero.NewBasePathFs(this.fileSystem, root))
	matches, err := doublestar.Glob(tree, "**/*"+this.extension, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrap(err, "glob plugins directory")
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(match)))
	}
	sort.Strings(paths)
	return paths, nil
}
