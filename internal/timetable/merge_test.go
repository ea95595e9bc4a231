package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/timetable-api/internal/models"
)

func TestMergeContiguousAllocations(t *testing.T) {
	merger := NewMerger(0)
	blocks := merger.Merge([]models.Allocation{
		alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 9*60+30),
		alloc("a2", "CS101", "A", "R101", "J. Cruz", Monday, 9*60+30, 10*60),
		alloc("a3", "CS101", "A", "R101", "J. Cruz", Monday, 10*60, 10*60+30),
	})
	require.Len(t, blocks, 1)
	assert.Equal(t, 9*60, blocks[0].StartMinute)
	assert.Equal(t, 10*60+30, blocks[0].EndMinute)
	assert.Equal(t, []string{"a1", "a2", "a3"}, blocks[0].SourceIDs)
}

func TestMergeKeepsGapsSeparate(t *testing.T) {
	merger := NewMerger(0)
	blocks := merger.Merge([]models.Allocation{
		alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60),
		alloc("a2", "CS101", "A", "R101", "J. Cruz", Monday, 10*60+30, 11*60),
	})
	assert.Len(t, blocks, 2)
}

func TestMergeSeparatesDifferentGroups(t *testing.T) {
	merger := NewMerger(0)
	blocks := merger.Merge([]models.Allocation{
		alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60),
		alloc("a2", "CS101", "B", "R101", "J. Cruz", Monday, 10*60, 11*60),
		alloc("a3", "CS101", "A", "R101", "J. Cruz", Tuesday, 10*60, 11*60),
	})
	assert.Len(t, blocks, 3)
}

func TestMergeRespectsMaxDuration(t *testing.T) {
	merger := NewMerger(240)
	// Six fully contiguous 60-minute allocations: 08:00 through 14:00.
	var allocs []models.Allocation
	for i := 0; i < 6; i++ {
		start := (8 + i) * 60
		allocs = append(allocs, alloc("a"+string(rune('1'+i)), "CS101", "A", "R101", "J. Cruz", Monday, start, start+60))
	}
	blocks := merger.Merge(allocs)
	require.Len(t, blocks, 2)
	for _, b := range blocks {
		assert.LessOrEqual(t, b.Duration(), 240)
	}
	assert.Equal(t, 8*60, blocks[0].StartMinute)
	assert.Equal(t, 12*60, blocks[0].EndMinute)
	assert.Equal(t, 12*60, blocks[1].StartMinute)
	assert.Equal(t, 14*60, blocks[1].EndMinute)
}

func TestMergeNeverTruncatesOversizedSingleAllocation(t *testing.T) {
	merger := NewMerger(240)
	blocks := merger.Merge([]models.Allocation{
		alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 8*60, 13*60),
	})
	require.Len(t, blocks, 1)
	// A single allocation past the cap stays intact; the cap only stops
	// further merging.
	assert.Equal(t, 5*60, blocks[0].Duration())
}

func TestMergeIdempotent(t *testing.T) {
	merger := NewMerger(240)
	input := []models.Allocation{
		alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 10*60),
		alloc("a2", "CS101", "A", "R101", "J. Cruz", Monday, 10*60, 13*60+30),
		alloc("a3", "CS205", "B", "R102", "A. Reyes", Monday, 9*60, 9*60+30),
		alloc("a4", "CS205", "B", "R102", "A. Reyes", Monday, 9*60+30, 10*60),
	}
	once := merger.Merge(input)
	twice := merger.MergeBlocks(once)
	assert.Equal(t, once, twice)
}

func TestMergeBlocksUnionsSourceIDs(t *testing.T) {
	merger := NewMerger(240)
	morning := merger.Merge([]models.Allocation{
		alloc("a1", "CS101", "A", "R101", "J. Cruz", Monday, 9*60, 9*60+30),
		alloc("a2", "CS101", "A", "R101", "J. Cruz", Monday, 9*60+30, 10*60),
	})
	tail := merger.Merge([]models.Allocation{
		alloc("a3", "CS101", "A", "R101", "J. Cruz", Monday, 10*60, 10*60+30),
	})
	require.Len(t, morning, 1)
	require.Len(t, tail, 1)

	// Re-merging two adjacent blocks keeps every underlying allocation id.
	blocks := merger.MergeBlocks(append(morning, tail...))
	require.Len(t, blocks, 1)
	assert.Equal(t, 9*60, blocks[0].StartMinute)
	assert.Equal(t, 10*60+30, blocks[0].EndMinute)
	assert.Equal(t, []string{"a1", "a2", "a3"}, blocks[0].SourceIDs)
}

func TestMergeEmptyInput(t *testing.T) {
	assert.Empty(t, NewMerger(0).Merge(nil))
}
