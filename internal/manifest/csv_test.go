package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `Illumina Inc.,,,,,,,,,,,,
[Heading],,,,,,,,,,,,
Descriptor File Name,GSA-24v3-0_A1.bpm,,,,,,,,,,,
Assay Format,Infinium HTS,,,,,,,,,,,
Date Manufactured,8/7/2018,,,,,,,,,,,
Loci Count ,4,,,,,,,,,,,
[Assay],,,,,,,,,,,,
IlmnID,Name,IlmnStrand,SNP,AddressA_ID,GenomeBuild,Chr,MapInfo,Ploidy,Species,Source,SourceStrand,RefStrand
rs1000000-138_B_R_2278949940,rs1000000,BOT,[T/C],0084743469,38,12,125673274,diploid,Homo sapiens,dbSNP,BOT,-
rs10000023-138_T_F_2299479676,rs10000023,TOP,[G/T],0073642232,38,4,95952929,diploid,Homo sapiens,dbSNP,TOP,+
rs141121176-138_B_F_2304245810,rs141121176,BOT,[I/D],0031623365,38,1,16861259,diploid,Homo sapiens,dbSNP,BOT,+
exm2268640-0_B_R_2304245817,exm2268640,BOT,[T/C],0045612382,38,12,125673274,diploid,Homo sapiens,dbSNP,BOT,-
[Controls],,,,,,,,,,,,
ST0001:Staining,Red,DNP (High),,,,,,,,,,
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(writeManifest(t, "gsa.csv", testManifest))
	require.NoError(t, err)
	require.Len(t, records, 4)

	r := records[0]
	assert.Equal(t, "rs1000000", r.Name)
	assert.Equal(t, "[T/C]", r.SNP)
	assert.Equal(t, RefStrandMinus, r.RefStrand)
	assert.Equal(t, "12", r.Chrom)
	assert.Equal(t, int64(125673274), r.Pos)
	assert.False(t, r.IsIndel())

	assert.Equal(t, RefStrandPlus, records[1].RefStrand)
	assert.True(t, records[2].IsIndel())

	// Index follows manifest row order.
	for i, rec := range records {
		assert.Equal(t, i, rec.Index)
	}

	// Rows after [Controls] are not probes.
	assert.Equal(t, "exm2268640", records[3].Name)
}

func TestReadCSVGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gsa.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(testManifest))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	records, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestReadCSVMissingColumn(t *testing.T) {
	content := `[Heading],,
Loci Count ,1,
[Assay],,
IlmnID,Name,SNP
x-1,rs1,[A/G]
`
	_, err := ReadCSV(writeManifest(t, "bad.csv", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestReadCSVNoAssaySection(t *testing.T) {
	content := "[Heading],\nDescriptor File Name,foo.bpm\n"
	_, err := ReadCSV(writeManifest(t, "noassay.csv", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[Assay]")
}

func TestReadCSVBadMapInfo(t *testing.T) {
	content := `[Assay],,,,,
IlmnID,Name,SNP,Chr,MapInfo,RefStrand
x-1,rs1,[A/G],1,not-a-number,+
`
	_, err := ReadCSV(writeManifest(t, "badpos.csv", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MapInfo")
}

func TestReadCSVNoProbes(t *testing.T) {
	content := `[Assay],,,,,
IlmnID,Name,SNP,Chr,MapInfo,RefStrand
[Controls],,,,,
`
	_, err := ReadCSV(writeManifest(t, "empty.csv", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no probe rows")
}

func TestNormalizeChrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12", "12"},
		{"chr12", "12"},
		{"ChrX", "X"},
		{" MT ", "MT"},
		{"chr", "chr"},
		{"0", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeChrom(tt.in), "normalizeChrom(%q)", tt.in)
	}
}
