package core

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/smarty/plugpack/contracts"
	"github.com/smarty/plugpack/logger"
)

// PackageInstaller writes a package's payload to <install dir>/plugin.bin.
// It trusts its input: verification is the caller's responsibility.
type PackageInstaller struct {
	fileSystem afero.Fs
	extractor  contracts.Extractor
	logger     logrus.FieldLogger
}

// NewPackageInstaller accepts a nil extractor, in which case payloads are only
// written, never unpacked.
func NewPackageInstaller(fileSystem afero.Fs, extractor contracts.Extractor) *PackageInstaller {
	return &PackageInstaller{fileSystem: fileSystem, extractor: extractor, logger: logger.L}
}

func (this *PackageInstaller) Install(request contracts.InstallationRequest) error {
	pkg, err := decodeFile(this.fileSystem, request.PackagePath)
	if err != nil {
		return err
	}

	if err = this.fileSystem.MkdirAll(request.InstallDirectory, 0755); err != nil {
		return errors.Wrap(err, "create install directory")
	}

	target := filepath.Join(request.InstallDirectory, contracts.InstalledFilename)
	if err = this.writeAtomically(target, pkg.Payload); err != nil {
		return err
	}

	if this.extractor != nil {
		if err = this.extractor.Extract(target, request.InstallDirectory); err != nil {
			return errors.Wrap(err, "extract payload")
		}
	}

	this.logger.WithFields(logrus.Fields{
		"package":     request.PackagePath,
		"install_dir": request.InstallDirectory,
		"size":        humanFileSize(float64(len(pkg.Payload))),
	}).Info("Plugin installed.")
	return nil
}

// writeAtomically stages the payload next to target and renames it into place,
// so target is either the previous file or the complete new payload.
func (this *PackageInstaller) writeAtomically(target string, payload []byte) (err error) {
	staging, err := afero.TempFile(this.fileSystem, filepath.Dir(target), "."+contracts.InstalledFilename+"-*")
	if err != nil {
		return errors.Wrap(err, "create staging file")
	}
	defer func() {
		if err != nil {
			_ = this.fileSystem.Remove(staging.Name())
		}
	}()

	if err = this.writeAndClose(staging, payload); err != nil {
		return err
	}
	return errors.Wrap(this.fileSystem.Rename(staging.Name(), target), "move payload into place")
}

func (this *PackageInstaller) writeAndClose(file afero.File, payload []byte) (err error) {
	defer closeResource(file, &err)
	_, err = file.Write(payload)
	return errors.Wrap(err, "write payload")
}
