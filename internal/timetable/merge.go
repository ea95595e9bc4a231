package timetable

import (
	"sort"
	"strings"

	"github.com/opencampus/timetable-api/internal/models"
)

// MaxBlockDuration caps a merged block's span in minutes. Without it a fully
// contiguous day would collapse into one unreadable span and break paginated
// print layouts.
const MaxBlockDuration = 240

// Merger collapses contiguous same-group allocations into display blocks.
type Merger struct {
	MaxDuration int
}

// NewMerger returns a merger with the given cap; zero or negative falls back
// to MaxBlockDuration.
func NewMerger(maxDuration int) Merger {
	if maxDuration <= 0 {
		maxDuration = MaxBlockDuration
	}
	return Merger{MaxDuration: maxDuration}
}

// Merge groups allocations by (courseCode, section, room, day, teacher),
// sorts each group by start and merges adjacent entries whose boundaries
// touch. When a merge would push the block past MaxDuration the block is
// closed and a new one starts; the current block is never truncated.
// Re-merging already merged output is a no-op.
func (m Merger) Merge(allocs []models.Allocation) []models.Block {
	groups := make(map[string][]models.Allocation)
	var order []string
	for _, alloc := range allocs {
		key := groupKey(alloc)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], alloc)
	}
	sort.Strings(order)

	var blocks []models.Block
	for _, key := range order {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartMinute < group[j].StartMinute
		})

		var current *models.Block
		for _, alloc := range group {
			if current != nil &&
				alloc.StartMinute == current.EndMinute &&
				alloc.EndMinute-current.StartMinute <= m.MaxDuration {
				current.EndMinute = alloc.EndMinute
				current.SourceIDs = append(current.SourceIDs, alloc.ID)
				continue
			}
			if current != nil {
				blocks = append(blocks, *current)
			}
			block := newBlock(alloc)
			current = &block
		}
		if current != nil {
			blocks = append(blocks, *current)
		}
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Day != blocks[j].Day {
			return dayOrder(blocks[i].Day) < dayOrder(blocks[j].Day)
		}
		if blocks[i].StartMinute != blocks[j].StartMinute {
			return blocks[i].StartMinute < blocks[j].StartMinute
		}
		return blocks[i].Room < blocks[j].Room
	})
	return blocks
}

// MergeBlocks re-merges blocks by expanding each one to a representative
// allocation, then replaces every representative id in the result with the
// union of the originating block's source ids. Already merged output passes
// through unchanged.
func (m Merger) MergeBlocks(blocks []models.Block) []models.Block {
	sources := make(map[string][]string, len(blocks))
	allocs := make([]models.Allocation, 0, len(blocks))
	for _, b := range blocks {
		id := b.Day + "|" + b.Room + "|" + FormatRange(b.StartMinute, b.EndMinute)
		if len(b.SourceIDs) > 0 {
			id = b.SourceIDs[0]
		}
		sources[id] = b.SourceIDs
		allocs = append(allocs, models.Allocation{
			ID:          id,
			CourseCode:  b.CourseCode,
			CourseName:  b.CourseName,
			Section:     b.Section,
			Room:        b.Room,
			Building:    b.Building,
			Capacity:    b.Capacity,
			Day:         b.Day,
			TeacherName: b.TeacherName,
			Department:  b.Department,
			StartMinute: b.StartMinute,
			EndMinute:   b.EndMinute,
		})
	}
	merged := m.Merge(allocs)
	for i := range merged {
		expanded := make([]string, 0, len(merged[i].SourceIDs))
		for _, id := range merged[i].SourceIDs {
			if orig := sources[id]; len(orig) > 0 {
				expanded = append(expanded, orig...)
				continue
			}
			expanded = append(expanded, id)
		}
		merged[i].SourceIDs = expanded
	}
	return merged
}

func newBlock(alloc models.Allocation) models.Block {
	return models.Block{
		CourseCode:  alloc.CourseCode,
		CourseName:  alloc.CourseName,
		Section:     alloc.Section,
		Room:        alloc.Room,
		Building:    alloc.Building,
		Capacity:    alloc.Capacity,
		Day:         alloc.Day,
		TeacherName: alloc.TeacherName,
		Department:  alloc.Department,
		StartMinute: alloc.StartMinute,
		EndMinute:   alloc.EndMinute,
		SourceIDs:   []string{alloc.ID},
	}
}

func groupKey(alloc models.Allocation) string {
	return strings.Join([]string{alloc.CourseCode, alloc.Section, alloc.Room, alloc.Day, alloc.TeacherName}, "|")
}
