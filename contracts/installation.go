package contracts

type InstallationRequest struct {
	PackagePath      string
	InstallDirectory string
}

type Verifier interface {
	Verify(path string) (bool, error)
}

type Inspector interface {
	Inspect(path string) (Report, error)
}

type Installer interface {
	Install(request InstallationRequest) error
}
