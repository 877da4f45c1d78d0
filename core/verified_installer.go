package core

import (
	"github.com/sirupsen/logrus"

	"github.com/smarty/plugpack/contracts"
	"github.com/smarty/plugpack/logger"
)

// VerifiedInstaller installs a package only after it verifies.
//
// When strict, a package that fails verification yields ErrVerificationFailed.
// Otherwise the failure is only logged and the call succeeds without installing.
type VerifiedInstaller struct {
	verifier  contracts.Verifier
	installer contracts.Installer
	strict    bool
	logger    logrus.FieldLogger
}

func NewVerifiedInstaller(verifier contracts.Verifier, installer contracts.Installer, strict bool) *VerifiedInstaller {
	return &VerifiedInstaller{verifier: verifier, installer: installer, strict: strict, logger: logger.L}
}

func (this *VerifiedInstaller) VerifyAndInstall(request contracts.InstallationRequest) error {
	verified, err := this.verifier.Verify(request.PackagePath)
	if err != nil {
		return err
	}
	if !verified {
		this.logger.WithFields(logrus.Fields{
			"package":     request.PackagePath,
			"install_dir": request.InstallDirectory,
		}).Error("Checksum verification failed; plugin not installed.")
		if this.strict {
			return contracts.ErrVerificationFailed
		}
		return nil
	}
	return this.installer.Install(request)
}

// Install satisfies contracts.Installer so a VerifiedInstaller can stand in for a plain one.
func (this *VerifiedInstaller) Install(request contracts.InstallationRequest) error {
	return this.VerifyAndInstall(request)
}
