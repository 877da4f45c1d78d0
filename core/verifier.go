package core

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/smarty/plugpack/contracts"
	"github.com/smarty/plugpack/logger"
)

// PackageVerifier recomputes a package's checksum and compares it with the stored one.
// Foreign files and checksum mismatches are reported as unverified; only I/O failures
// are errors.
type PackageVerifier struct {
	fileSystem afero.Fs
	logger     logrus.FieldLogger
}

func NewPackageVerifier(fileSystem afero.Fs) *PackageVerifier {
	return &PackageVerifier{fileSystem: fileSystem, logger: logger.L}
}

func (this *PackageVerifier) Verify(path string) (bool, error) {
	report, err := this.Inspect(path)
	return report.Verified, err
}

func (this *PackageVerifier) Inspect(path string) (contracts.Report, error) {
	report := contracts.Report{Path: path}

	pkg, err := decodeFile(this.fileSystem, path)
	if contracts.IsFormatError(err) {
		report.Problem = err
		this.logger.WithField("path", path).WithError(err).Warn("Invalid package file.")
		return report, nil
	}
	if err != nil {
		return report, err
	}

	computed := Digest(pkg.Payload)
	report.StoredChecksum = string(pkg.Checksum)
	report.ComputedChecksum = string(computed)
	report.PayloadSize = len(pkg.Payload)
	report.Verified = bytes.Equal(computed, pkg.Checksum)

	if !report.Verified {
		report.Problem = contracts.ErrChecksumMismatch
		this.logger.WithFields(logrus.Fields{
			"path":     path,
			"stored":   report.StoredChecksum,
			"computed": report.ComputedChecksum,
		}).Warn("Checksum verification failed.")
	}
	return report, nil
}

// decodeFile holds the package file open only for the duration of the decode.
func decodeFile(fileSystem afero.Fs, path string) (pkg contracts.Package, err error) {
	file, err := fileSystem.Open(path)
	if err != nil {
		return pkg, errors.Wrap(err, "open package")
	}
	defer closeResource(file, &err)

	pkg, err = Decode(file)
	if err != nil {
		return contracts.Package{}, errors.Wrapf(err, "decode %s", path)
	}
	return pkg, nil
}
