package core

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/smarty/plugpack/contracts"
)

// Uninstall removes the installed payload and leaves the directory in place.
func Uninstall(fileSystem afero.Fs, installDirectory string) error {
	target := filepath.Join(installDirectory, contracts.InstalledFilename)
	err := fileSystem.Remove(target)
	if errors.Is(err, os.ErrNotExist) {
		return contracts.ErrNotInstalled
	}
	return errors.Wrap(err, "remove installed payload")
}
