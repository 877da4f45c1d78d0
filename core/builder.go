package core

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/smarty/plugpack/contracts"
	"github.com/smarty/plugpack/logger"
)

// PackageBuilder turns a source file, or a directory via the bundler, into a package file.
type PackageBuilder struct {
	fileSystem afero.Fs
	bundler    contracts.Bundler
	logger     logrus.FieldLogger
}

func NewPackageBuilder(fileSystem afero.Fs, bundler contracts.Bundler) *PackageBuilder {
	return &PackageBuilder{fileSystem: fileSystem, bundler: bundler, logger: logger.L}
}

func (this *PackageBuilder) Create(source, destination string) error {
	pkg, err := this.load(source)
	if err != nil {
		return err
	}
	if err = this.write(destination, pkg); err != nil {
		return err
	}
	this.logger.WithFields(logrus.Fields{
		"source":   source,
		"package":  destination,
		"size":     humanFileSize(float64(len(pkg.Payload))),
		"checksum": string(pkg.Checksum),
	}).Info("Plugin package created.")
	return nil
}

func (this *PackageBuilder) load(source string) (contracts.Package, error) {
	info, err := this.fileSystem.Stat(source)
	if err != nil {
		return contracts.Package{}, errors.Wrap(err, "stat source")
	}
	if info.IsDir() {
		return this.bundle(source)
	}
	if uint64(info.Size()) > contracts.MaxPayloadLength {
		return contracts.Package{}, contracts.ErrPayloadTooLarge
	}
	return this.readFile(source, info.Size())
}

func (this *PackageBuilder) bundle(directory string) (contracts.Package, error) {
	if this.bundler == nil {
		return contracts.Package{}, errors.Errorf("%q is a directory and no bundler is configured", directory)
	}
	this.logger.WithField("directory", directory).Debug("Bundling directory into payload.")
	payload, err := this.bundler.Bundle(directory)
	if err != nil {
		return contracts.Package{}, errors.Wrap(err, "bundle directory")
	}
	return contracts.Package{Checksum: Digest(payload), Payload: payload}, nil
}

func (this *PackageBuilder) readFile(path string, size int64) (pkg contracts.Package, err error) {
	file, err := this.fileSystem.Open(path)
	if err != nil {
		return pkg, errors.Wrap(err, "open source")
	}
	defer closeResource(file, &err)

	reader := newChecksumReader(file)
	buffer := bytes.NewBuffer(make([]byte, 0, size))
	if _, err = io.Copy(buffer, reader); err != nil {
		return pkg, errors.Wrap(err, "read source")
	}
	return contracts.Package{Checksum: reader.Checksum(), Payload: buffer.Bytes()}, nil
}

func (this *PackageBuilder) write(destination string, pkg contracts.Package) (err error) {
	if err = this.fileSystem.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return errors.Wrap(err, "create package directory")
	}
	file, err := this.fileSystem.Create(destination)
	if err != nil {
		return errors.Wrap(err, "create package")
	}
	defer func() {
		if err != nil {
			_ = this.fileSystem.Remove(destination)
		}
	}()
	defer closeResource(file, &err)

	return WritePackage(file, pkg)
}
