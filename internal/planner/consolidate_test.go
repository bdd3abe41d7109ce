package planner

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/scan"
	"github.com/harrison/fseq/internal/scheduler"
)

func TestConsolidateDir(t *testing.T) {
	dir := someDir(t, fixtureNames...)

	actions, err := ConsolidateDir(scan.NewClassifier(nil), dir, "tag")
	require.NoError(t, err)

	want := []models.RenameAction{
		move(dir, "some.dir.0005.jpg", "some.dir.0004.jpg"),
		move(dir, "other_random_name.jpg", "some.dir.0005.jpg"),
		move(dir, "random_name.jpg", "some.dir.0006.jpg"),
		move(dir, "some.dir.tag.1234.jpg", "some.dir.tag.0001.jpg"),
		move(dir, "random_name.tag.1234.jpg", "some.dir.tag.0005.jpg"),
	}
	assert.Equal(t, want, actions)
}

func TestConsolidateDirAlreadyConsolidated(t *testing.T) {
	dir := someDir(t, "some.dir.0001.jpg", "some.dir.0002.png", "some.dir.tag.0001.jpg")

	actions, err := ConsolidateDir(scan.NewClassifier(nil), dir, "tag")
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestConsolidateDirMissing(t *testing.T) {
	_, err := ConsolidateDir(scan.NewClassifier(nil), filepath.Join(t.TempDir(), "nope"), "tag")
	assert.Error(t, err)
}

func TestConsolidateLeavesLowFilesAlone(t *testing.T) {
	b := scan.BucketOf("d", "d", "d/d.0002.jpg", "d/d.0007.jpg")

	actions := Consolidate(b)
	assert.Equal(t, []models.RenameAction{
		{Src: "d/d.0007.jpg", Dest: "d/d.0001.jpg"},
	}, actions)
}

func TestConsolidateEmptyBucket(t *testing.T) {
	assert.Empty(t, Consolidate(scan.NewBucket("d", "d")))

	actions := Consolidate(scan.BucketOf("d", "d", "d/b.png", "d/a.jpg"))
	assert.Equal(t, []models.RenameAction{
		{Src: "d/a.jpg", Dest: "d/d.0001.jpg"},
		{Src: "d/b.png", Dest: "d/d.0002.png"},
	}, actions)
}

// TestConsolidateRandomBuckets checks that random buckets consolidate to a
// gapless 1..N sequence and that the plan can be scheduled and applied.
func TestConsolidateRandomBuckets(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 300; round++ {
		k := rng.Intn(10)
		rogues := rng.Intn(4)

		var paths []string
		for _, idx := range rng.Perm(30)[:k] {
			paths = append(paths, fmt.Sprintf("d/d.%04d.jpg", idx+1))
		}
		for i := 0; i < rogues; i++ {
			paths = append(paths, fmt.Sprintf("d/rogue%d.jpg", i))
		}
		b := scan.BucketOf("d", "d", paths...)

		actions := Consolidate(b)

		dests := map[string]bool{}
		for _, a := range actions {
			assert.False(t, dests[a.Dest], "round %d: duplicate destination %s", round, a.Dest)
			dests[a.Dest] = true
		}

		plan, err := scheduler.Schedule(actions)
		require.NoError(t, err, "round %d", round)
		final, err := scheduler.Simulate(paths, plan)
		require.NoError(t, err, "round %d: %v", round, plan)

		var got []int
		for path := range final {
			idx, ok := b.IndexOf(path)
			require.True(t, ok, "round %d: %s is not numbered", round, path)
			got = append(got, idx)
		}
		sort.Ints(got)

		var want []int
		for i := 1; i <= k+rogues; i++ {
			want = append(want, i)
		}
		assert.Equal(t, want, got, "round %d: %v", round, paths)
	}
}
