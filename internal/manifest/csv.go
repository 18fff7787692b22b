package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Section markers in Illumina CSV manifests.
const (
	sectionHeading  = "[Heading]"
	sectionAssay    = "[Assay]"
	sectionControls = "[Controls]"
)

// Columns the loader needs from the [Assay] header row.
var assayColumns = []string{"Name", "SNP", "Chr", "MapInfo", "RefStrand"}

// ReadCSV loads probe records from an Illumina CSV manifest.
// Gzipped manifests (.csv.gz) are handled transparently.
func ReadCSV(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return parseCSV(reader)
}

// parseCSV parses manifest content. The file has a [Heading] key/value
// section, an [Assay] section with a header row and one row per probe, and
// an optional [Controls] section that ends the probe list.
func parseCSV(reader io.Reader) ([]*Record, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1 // section lines have fewer fields than probe rows

	lociCount := 0

	// Scan the heading rows until the [Assay] marker.
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("manifest has no %s section", sectionAssay)
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest heading: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == sectionAssay {
			break
		}
		if strings.HasPrefix(key, "Loci Count") && len(row) > 1 {
			// Used only to pre-size the result; a bad value is not fatal.
			if n, err := strconv.Atoi(strings.TrimSpace(row[1])); err == nil {
				lociCount = n
			}
		}
	}

	// Header row of the [Assay] section maps column names to positions.
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read assay header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range assayColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("manifest assay header missing %q column", name)
		}
	}

	records := make([]*Record, 0, lociCount)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest row %d: %w", len(records)+1, err)
		}
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(row[0]) == sectionControls {
			break
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("manifest row %d has %d fields, expected %d",
				len(records)+1, len(row), len(header))
		}

		pos, err := strconv.ParseInt(strings.TrimSpace(row[cols["MapInfo"]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("manifest row %d: invalid MapInfo: %w", len(records)+1, err)
		}

		records = append(records, &Record{
			Name:      strings.TrimSpace(row[cols["Name"]]),
			SNP:       strings.TrimSpace(row[cols["SNP"]]),
			RefStrand: ParseRefStrand(row[cols["RefStrand"]]),
			Chrom:     normalizeChrom(row[cols["Chr"]]),
			Pos:       pos,
			Index:     len(records),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("manifest %s section has no probe rows", sectionAssay)
	}

	return records, nil
}

// normalizeChrom strips an optional "chr" prefix and surrounding space.
func normalizeChrom(chrom string) string {
	chrom = strings.TrimSpace(chrom)
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		return chrom[3:]
	}
	return chrom
}
