package core

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// Digest returns the MD5 of payload as 32 lowercase hex characters.
func Digest(payload []byte) []byte {
	sum := md5.Sum(payload)
	return hexDigest(sum[:])
}

func hexDigest(sum []byte) []byte {
	encoded := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(encoded, sum)
	return encoded
}

// checksumReader digests everything read through it, so a payload can be
// loaded and checksummed in one pass.
type checksumReader struct {
	source io.Reader
	hasher hash.Hash
}

func newChecksumReader(source io.Reader) *checksumReader {
	return &checksumReader{source: source, hasher: md5.New()}
}

func (this *checksumReader) Read(buffer []byte) (int, error) {
	count, err := this.source.Read(buffer)
	_, _ = this.hasher.Write(buffer[:count])
	return count, err
}

// Checksum is the package checksum of the bytes read so far.
func (this *checksumReader) Checksum() []byte {
	return hexDigest(this.hasher.Sum(nil))
}
