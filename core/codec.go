package core

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/smarty/plugpack/contracts"
)

// Encode writes payload as a complete package: magic, hex checksum, length, payload.
func Encode(writer io.Writer, payload []byte) error {
	return WritePackage(writer, contracts.Package{Checksum: Digest(payload), Payload: payload})
}

// WritePackage writes the given checksum verbatim; it is not recomputed.
func WritePackage(writer io.Writer, pkg contracts.Package) error {
	if len(pkg.Checksum) != contracts.ChecksumLength {
		return contracts.ErrChecksumLength
	}
	if uint64(len(pkg.Payload)) > contracts.MaxPayloadLength {
		return contracts.ErrPayloadTooLarge
	}

	header := make([]byte, 0, contracts.HeaderLength)
	header = append(header, contracts.Magic[:]...)
	header = append(header, pkg.Checksum...)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(pkg.Payload)))

	if _, err := writer.Write(header); err != nil {
		return errors.Wrap(err, "write package header")
	}
	if _, err := writer.Write(pkg.Payload); err != nil {
		return errors.Wrap(err, "write package payload")
	}
	return nil
}

// Decode reads exactly one package from reader. A source that ends before the
// declared payload length yields ErrTruncated; extra bytes yield ErrTrailingData.
func Decode(reader io.Reader) (contracts.Package, error) {
	header := make([]byte, contracts.HeaderLength)

	n, err := io.ReadFull(reader, header[:contracts.MagicLength])
	if !bytes.Equal(header[:n], contracts.Magic[:n]) {
		return contracts.Package{}, contracts.ErrBadMagic
	}
	if err != nil {
		return contracts.Package{}, headerError(err)
	}
	if _, err := io.ReadFull(reader, header[contracts.MagicLength:]); err != nil {
		return contracts.Package{}, headerError(err)
	}

	checksum := header[contracts.MagicLength : contracts.MagicLength+contracts.ChecksumLength]
	length := binary.LittleEndian.Uint32(header[contracts.MagicLength+contracts.ChecksumLength:])

	payload, err := readPayload(reader, int64(length))
	if err != nil {
		return contracts.Package{}, err
	}

	if err = expectEnd(reader); err != nil {
		return contracts.Package{}, err
	}

	return contracts.Package{Checksum: checksum, Payload: payload}, nil
}

// readPayload grows the buffer as data arrives so a corrupt length field
// cannot force a 4 GiB allocation up front.
func readPayload(reader io.Reader, length int64) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, min(length, 64*1024)))
	copied, err := io.CopyN(buffer, reader, length)
	if err == io.EOF || (err == nil && copied < length) {
		return nil, errors.Wrapf(contracts.ErrTruncated, "payload: read %d of %d bytes", copied, length)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read payload")
	}
	return buffer.Bytes(), nil
}

// expectEnd requires the source to be exhausted after the payload.
func expectEnd(reader io.Reader) error {
	var extra [1]byte
	_, err := io.ReadFull(reader, extra[:])
	switch err {
	case io.EOF:
		return nil
	case nil:
		return contracts.ErrTrailingData
	default:
		return errors.Wrap(err, "read past payload")
	}
}

func headerError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(contracts.ErrTruncated, "header")
	}
	return errors.Wrap(err, "read header")
}
