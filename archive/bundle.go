// Package archive converts plugin directories to and from tar.gz payloads.
package archive

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/mholt/archiver"
	"github.com/pkg/errors"
)

const bundleFilename = "bundle.tar.gz"

type TarGzBundler struct {
	compressionLevel int
}

// NewTarGzBundler uses gzip's default compression level when level is zero.
func NewTarGzBundler(level int) *TarGzBundler {
	return &TarGzBundler{compressionLevel: level}
}

// Bundle archives the contents of directory, not the directory itself,
// so that extraction recreates them directly inside the install directory.
func (this *TarGzBundler) Bundle(directory string) (payload []byte, err error) {
	sources, err := listSources(directory)
	if err != nil {
		return nil, err
	}

	workspace, err := os.MkdirTemp("", "plugpack-bundle-")
	if err != nil {
		return nil, errors.Wrap(err, "create bundle workspace")
	}
	defer func() { _ = os.RemoveAll(workspace) }()

	destination := filepath.Join(workspace, bundleFilename)
	if err = this.archiver().Archive(sources, destination); err != nil {
		return nil, errors.Wrapf(err, "bundle %s", directory)
	}

	payload, err = os.ReadFile(destination)
	return payload, errors.Wrap(err, "read bundle")
}

func (this *TarGzBundler) Extract(archivePath, directory string) error {
	err := this.archiver().Unarchive(archivePath, directory)
	return errors.Wrapf(err, "extract %s", archivePath)
}

func (this *TarGzBundler) archiver() *archiver.TarGz {
	gz := archiver.NewTarGz()
	gz.OverwriteExisting = true
	gz.MkdirAll = true
	if this.compressionLevel != 0 {
		gz.CompressionLevel = this.compressionLevel
	}
	return gz
}

func listSources(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, errors.Wrap(err, "list bundle sources")
	}
	sources := make([]string, 0, len(entries))
	for _, entry := range entries {
		sources = append(sources, filepath.Join(directory, entry.Name()))
	}
	sort.Strings(sources)
	return sources, nil
}
