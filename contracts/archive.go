package contracts

// Bundler packs a directory into a single opaque payload.
type Bundler interface {
	Bundle(directory string) ([]byte, error)
}

// Extractor unpacks a payload written by a Bundler into a directory.
type Extractor interface {
	Extract(archivePath, directory string) error
}
