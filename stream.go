package cellid

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Encode writes the raw 64-bit id to w as a little-endian fixed64. Invalid
// ids encode like any other value, so a decoded id must still be checked
// with IsValid when validity matters.
func (ci CellID) Encode(w io.Writer) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(ci))
	_, err := w.Write(buf[:])
	return err
}

// DecodeCellID reads an id previously written with Encode. A truncated
// stream is reported as an error, never a panic.
func DecodeCellID(r io.Reader) (CellID, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return None(), errors.Wrap(err, "decoding cell id")
	}
	return CellID(binary.LittleEndian.Uint64(buf[:])), nil
}

// Encode writes the compact id to w in its curve-position form, keeping the
// wire format shared between the two encodings.
func (ci CompactCellID) Encode(w io.Writer) error {
	return ci.CellID().Encode(w)
}

// DecodeCompactCellID reads an id previously written with Encode, producing
// the level-28 ancestor for ids deeper than CompactMaxLevel.
func DecodeCompactCellID(r io.Reader) (CompactCellID, error) {
	id, err := DecodeCellID(r)
	if err != nil {
		return CompactNone(), err
	}
	if !id.IsValid() {
		return CompactNone(), nil
	}
	return CompactCellIDFromCellID(truncateToCompact(id)), nil
}

// WriteCellStream writes a snapshot of ids to out: a short ASCII header
// followed by one snappy-compressed block of little-endian fixed64 values.
// It returns the number of bytes written.
func WriteCellStream(out io.Writer, ids []CellID) (int, error) {
	written := 0

	n, err := fmt.Fprintf(out, "cells %d\n", len(ids))
	if err != nil {
		return written + n, err
	}
	written += n

	src := make([]byte, 8*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint64(src[8*i:], uint64(id))
	}
	buf := snappy.Encode(nil, src)

	n, err = fmt.Fprintf(out, "compression snappy\nsize %d\n", len(buf))
	if err != nil {
		return written + n, err
	}
	written += n

	n, err = out.Write(buf)
	return written + n, err
}

// ReadCellStream reads a snapshot previously written with WriteCellStream.
func ReadCellStream(in io.Reader) ([]CellID, error) {
	var (
		reader = bufio.NewReader(in)
		ids    []CellID
		count  = -1
	)
	for {
		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// trim \n
		line = line[:len(line)-1]
		space := bytes.IndexByte(line, ' ')
		if space < 0 {
			return nil, errors.Errorf("corrupted cell stream? malformed header line %q", line)
		}
		v, _ := strconv.ParseUint(string(line[space+1:]), 10, 64)

		switch string(line[:space]) {
		case "cells":
			count = int(v)

		case "compression":
			if c := string(line[space+1:]); c != "snappy" {
				return nil, errors.Errorf("corrupted cell stream? unsupported compression %q", c)
			}

		case "size":
			if count < 0 {
				return nil, errors.New("corrupted cell stream? size header before cell count")
			}
			readBuf := make([]byte, int(v))
			if _, err := io.ReadFull(reader, readBuf); err != nil {
				return nil, errors.Wrap(err, "reading cell stream block")
			}
			src, err := snappy.Decode(nil, readBuf)
			if err != nil {
				return nil, errors.Wrap(err, "corrupted cell stream? decompressing block failed")
			}
			if len(src) != 8*count {
				return nil, errors.Errorf("corrupted cell stream? expected %d cells, block holds %d bytes", count, len(src))
			}
			ids = make([]CellID, count)
			for i := range ids {
				ids[i] = CellID(binary.LittleEndian.Uint64(src[8*i:]))
			}
			return ids, nil
		}
	}
	if count == 0 {
		return []CellID{}, nil
	}
	return nil, errors.New("corrupted cell stream? missing data block")
}
