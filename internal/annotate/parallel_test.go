package annotate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordgenlab/arraybaf/internal/manifest"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// mockLookup returns no probes for all positions.
type mockLookup struct{}

func (m *mockLookup) FindProbes(string, int64, string) []*manifest.Record { return nil }

func mockAnnotator() *Annotator {
	return NewAnnotator(&mockLookup{}, []Sample{
		{Name: "s1", Fields: []FormatField{&stubField{id: "BAF", val: "."}}},
	})
}

func makeItems(n int) <-chan WorkItem {
	ch := make(chan WorkItem, n)
	for i := range n {
		ch <- WorkItem{
			Seq: i,
			Variant: &vcf.Variant{
				Chrom: "1",
				Pos:   int64(100 + i),
				Ref:   "A",
				Alts:  []string{"T"},
			},
		}
	}
	close(ch)
	return ch
}

func TestParallelAnnotate_OrderPreservation(t *testing.T) {
	ann := mockAnnotator()

	items := makeItems(200)
	results := ann.ParallelAnnotate(items, 8)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestParallelAnnotate_SingleWorker(t *testing.T) {
	ann := mockAnnotator()

	items := makeItems(50)
	results := ann.ParallelAnnotate(items, 1)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 50)
	for i, seq := range collected {
		assert.Equal(t, i, seq)
	}
}

func TestParallelAnnotate_EmptyInput(t *testing.T) {
	ann := mockAnnotator()

	ch := make(chan WorkItem)
	close(ch)
	results := ann.ParallelAnnotate(ch, 4)

	count := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOrderedCollect_EarlyError(t *testing.T) {
	ann := mockAnnotator()

	items := makeItems(100)
	results := ann.ParallelAnnotate(items, 4)

	count := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		count++
		if count == 5 {
			return fmt.Errorf("stop at 5")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 5, count)
}

func TestParallelAnnotate_ProducesValues(t *testing.T) {
	ann := mockAnnotator()

	items := makeItems(5)
	results := ann.ParallelAnnotate(items, 2)

	err := OrderedCollect(results, func(r WorkResult) error {
		require.NotNil(t, r.Res)
		require.Len(t, r.Res.Values, 1)
		assert.Equal(t, []string{"."}, r.Res.Values[0])
		return nil
	})
	require.NoError(t, err)
}
