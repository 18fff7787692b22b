// Package gtc reads Illumina genotype call (GTC) files.
//
// A GTC file is a little-endian binary container: a 3-byte magic, a version
// byte, and a table of contents mapping numeric entry IDs to absolute file
// offsets. A few small entries store their value directly in the offset
// field; the rest point at strings, scalars or per-probe arrays elsewhere in
// the file. Per-probe arrays are ordered by manifest row, so index i in an
// array belongs to row i of the bead pool manifest the sample was called
// against.
package gtc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const gtcMagic = "gtc"

const (
	minSupportedVersion = 3
	maxSupportedVersion = 5

	// B allele frequencies and log R ratios appear in version 4 files.
	intensityDataVersion = 4
)

// Table of contents entry IDs.
const (
	idNumSNPs         uint16 = 1
	idPloidy          uint16 = 2
	idPloidyType      uint16 = 3
	idSampleName      uint16 = 10
	idSamplePlate     uint16 = 11
	idSampleWell      uint16 = 12
	idClusterFile     uint16 = 100
	idSNPManifest     uint16 = 101
	idImagingDate     uint16 = 200
	idAutocallDate    uint16 = 201
	idAutocallVersion uint16 = 300
	idNormalization   uint16 = 400
	idControlsX       uint16 = 500
	idControlsY       uint16 = 501
	idRawX            uint16 = 1000
	idRawY            uint16 = 1001
	idGenotypes       uint16 = 1002
	idBaseCalls       uint16 = 1003
	idGenotypeScores  uint16 = 1004
	idScannerData     uint16 = 1005
	idCallRate        uint16 = 1006
	idGender          uint16 = 1007
	idLogRDev         uint16 = 1008
	idGC10            uint16 = 1009
	idGC50            uint16 = 1011
	idBAlleleFreqs    uint16 = 1012
	idLogRRatios      uint16 = 1013
	idSlideIdentifier uint16 = 1016
)

// ErrNoEntry reports that a GTC file's table of contents lacks a requested
// entry.
var ErrNoEntry = errors.New("no table of contents entry")

// File is an open GTC file. Readers seek per entry, so a File must not be
// used from multiple goroutines at once.
type File struct {
	path    string
	file    *os.File
	version byte
	toc     map[uint16]int32
}

// Open reads the header and table of contents of a GTC file.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gtc: %w", err)
	}

	g := &File{path: path, file: f}
	if err := g.readHeader(); err != nil {
		f.Close()
		return nil, fmt.Errorf("gtc %s: %w", path, err)
	}
	return g, nil
}

func (f *File) readHeader() error {
	r := bufio.NewReader(f.file)

	magic := make([]byte, len(gtcMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != gtcMagic {
		return fmt.Errorf("bad magic %q, not a gtc file", magic)
	}

	version, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if version < minSupportedVersion || version > maxSupportedVersion {
		return fmt.Errorf("unsupported gtc version %d", version)
	}
	f.version = version

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read table of contents size: %w", err)
	}
	if count < 0 {
		return fmt.Errorf("negative table of contents size %d", count)
	}

	f.toc = make(map[uint16]int32, count)
	for i := int32(0); i < count; i++ {
		var id uint16
		var offset int32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return fmt.Errorf("read table of contents entry %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return fmt.Errorf("read table of contents entry %d: %w", i, err)
		}
		f.toc[id] = offset
	}
	return nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.file.Close()
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// Version returns the GTC format version.
func (f *File) Version() int {
	return int(f.version)
}

// NumSNPs returns the number of probes the file carries data for, or 0 if
// the entry is absent. The value lives in the table of contents itself.
func (f *File) NumSNPs() int {
	return int(f.toc[idNumSNPs])
}

// Ploidy returns the sample ploidy, or 0 if the entry is absent.
func (f *File) Ploidy() int {
	return int(f.toc[idPloidy])
}

// PloidyType returns the autocall ploidy type, or 0 if the entry is absent.
func (f *File) PloidyType() int {
	return int(f.toc[idPloidyType])
}

func (f *File) SampleName() (string, error)      { return f.readString(idSampleName) }
func (f *File) SamplePlate() (string, error)     { return f.readString(idSamplePlate) }
func (f *File) SampleWell() (string, error)      { return f.readString(idSampleWell) }
func (f *File) ClusterFile() (string, error)     { return f.readString(idClusterFile) }
func (f *File) SNPManifest() (string, error)     { return f.readString(idSNPManifest) }
func (f *File) ImagingDate() (string, error)     { return f.readString(idImagingDate) }
func (f *File) AutocallDate() (string, error)    { return f.readString(idAutocallDate) }
func (f *File) AutocallVersion() (string, error) { return f.readString(idAutocallVersion) }
func (f *File) SlideIdentifier() (string, error) { return f.readString(idSlideIdentifier) }

// CallRate returns the fraction of probes with a genotype call.
func (f *File) CallRate() (float32, error) {
	return f.readFloat32(idCallRate)
}

// Gender returns the autocall gender estimate as a single letter, e.g.
// 'M', 'F' or 'U'.
func (f *File) Gender() (byte, error) {
	return f.readByte(idGender)
}

// LogRDev returns the standard deviation of the log R ratios.
func (f *File) LogRDev() (float32, error) {
	return f.readFloat32(idLogRDev)
}

// GC10 returns the GenCall score at the 10th percentile.
func (f *File) GC10() (float32, error) {
	return f.readFloat32(idGC10)
}

// GC50 returns the GenCall score at the 50th percentile.
func (f *File) GC50() (float32, error) {
	return f.readFloat32(idGC50)
}

// GenotypeScores returns the per-probe GenCall scores, indexed by manifest
// row.
func (f *File) GenotypeScores() ([]float32, error) {
	return f.readFloat32Array(idGenotypeScores)
}

// BAlleleFreqs returns the per-probe B allele frequencies, indexed by
// manifest row. No-call probes hold NaN. Requires a version 4 or later file.
func (f *File) BAlleleFreqs() ([]float32, error) {
	if f.version < intensityDataVersion {
		return nil, fmt.Errorf("b allele frequencies require gtc version %d or later, file is version %d",
			intensityDataVersion, f.version)
	}
	return f.readFloat32Array(idBAlleleFreqs)
}

// LogRRatios returns the per-probe log R ratios, indexed by manifest row.
// No-call probes hold NaN. Requires a version 4 or later file.
func (f *File) LogRRatios() ([]float32, error) {
	if f.version < intensityDataVersion {
		return nil, fmt.Errorf("log r ratios require gtc version %d or later, file is version %d",
			intensityDataVersion, f.version)
	}
	return f.readFloat32Array(idLogRRatios)
}

// seek positions the file at the start of an entry's payload.
func (f *File) seek(id uint16) error {
	offset, ok := f.toc[id]
	if !ok {
		return fmt.Errorf("entry %d: %w", id, ErrNoEntry)
	}
	if _, err := f.file.Seek(int64(offset), io.SeekStart); err != nil {
		return fmt.Errorf("seek to entry %d: %w", id, err)
	}
	return nil
}

func (f *File) readFloat32(id uint16) (float32, error) {
	if err := f.seek(id); err != nil {
		return 0, err
	}
	var v float32
	if err := binary.Read(f.file, binary.LittleEndian, &v); err != nil {
		return 0, fmt.Errorf("read entry %d: %w", id, err)
	}
	return v, nil
}

func (f *File) readByte(id uint16) (byte, error) {
	if err := f.seek(id); err != nil {
		return 0, err
	}
	var b [1]byte
	if _, err := io.ReadFull(f.file, b[:]); err != nil {
		return 0, fmt.Errorf("read entry %d: %w", id, err)
	}
	return b[0], nil
}

// readString reads a length-prefixed string. The length uses the .NET
// BinaryWriter encoding: seven bits per byte, high bit set while more bytes
// follow.
func (f *File) readString(id uint16) (string, error) {
	if err := f.seek(id); err != nil {
		return "", err
	}
	r := bufio.NewReader(f.file)

	length := 0
	for shift := 0; ; shift += 7 {
		if shift > 28 {
			return "", fmt.Errorf("entry %d: string length prefix too long", id)
		}
		b, err := r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("read entry %d: %w", id, err)
		}
		length |= int(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read entry %d: %w", id, err)
	}
	return string(buf), nil
}

func (f *File) readFloat32Array(id uint16) ([]float32, error) {
	if err := f.seek(id); err != nil {
		return nil, err
	}
	r := bufio.NewReader(f.file)

	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("read entry %d length: %w", id, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("entry %d has negative length %d", id, n)
	}

	vals := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, fmt.Errorf("read entry %d values: %w", id, err)
	}
	return vals, nil
}
