package manifest

import "fmt"

// Lookup resolves the probes assaying a genomic position. Several probes may
// target the same locus; they are returned in manifest order.
type Lookup struct {
	byPos  map[string][]*Record
	byName map[string][]*Record
	n      int
}

// NewLookup indexes records by position and by locus name.
func NewLookup(records []*Record) *Lookup {
	l := &Lookup{
		byPos:  make(map[string][]*Record, len(records)),
		byName: make(map[string][]*Record, len(records)),
		n:      len(records),
	}
	for _, r := range records {
		key := posKey(r.Chrom, r.Pos)
		l.byPos[key] = append(l.byPos[key], r)
		l.byName[r.Name] = append(l.byName[r.Name], r)
	}
	return l
}

// FindProbes returns the probes mapping to a position, falling back to a
// locus-name match when the position is unknown to the manifest. The chrom
// argument must already be normalized (no "chr" prefix).
func (l *Lookup) FindProbes(chrom string, pos int64, id string) []*Record {
	if recs := l.byPos[posKey(chrom, pos)]; len(recs) > 0 {
		return recs
	}
	if id == "" || id == "." {
		return nil
	}
	return l.byName[id]
}

// Len returns the number of indexed probes.
func (l *Lookup) Len() int {
	return l.n
}

func posKey(chrom string, pos int64) string {
	return fmt.Sprintf("%s:%d", chrom, pos)
}
