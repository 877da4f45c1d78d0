package contracts

import "errors"

// Package is the transient, in-memory form of a plugin package file.
type Package struct {
	Checksum []byte
	Payload  []byte
}

const (
	MagicLength    = 4
	ChecksumLength = 32
	LengthLength   = 4
	HeaderLength   = MagicLength + ChecksumLength + LengthLength

	MaxPayloadLength = 1<<32 - 1

	InstalledFilename       = "plugin.bin"
	DefaultPackageExtension = ".plug"
)

var Magic = [MagicLength]byte{'P', 'L', 'U', 'G'}

var (
	ErrBadMagic           = errors.New("bad magic: file is not a plugin package")
	ErrTrailingData       = errors.New("unexpected data after the declared payload")
	ErrTruncated          = errors.New("package is shorter than its declared length")
	ErrPayloadTooLarge    = errors.New("payload exceeds the 4 GiB format limit")
	ErrChecksumLength     = errors.New("checksum must be exactly 32 bytes")
	ErrChecksumMismatch   = errors.New("stored checksum does not match the payload")
	ErrVerificationFailed = errors.New("package failed verification")
	ErrNotInstalled       = errors.New("plugin is not installed")
)

// IsFormatError reports whether err means "this is not a well-formed package"
// as opposed to an I/O failure.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrBadMagic) || errors.Is(err, ErrTrailingData)
}
