package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/mithrel/sakura/pkg/api"
)

// Emits a sample corpus of notes as JSON, suitable for seeding a store when
// poking at search behavior by hand. Content is deterministic; IDs are not.

func main() {
	// Deterministic seed for reproducible content
	mr := mrand.New(mrand.NewSource(42))

	tags := make([]string, 20)
	for i := 0; i < 20; i++ {
		tags[i] = fmt.Sprintf("tag%02d", i+1)
	}
	notebooks := []string{"inbox", "work", "travel", "recipes"}

	const total = 500
	out := make([]api.Note, 0, total)
	base := time.Now().UTC()

	for i := 0; i < total; i++ {
		parent := notebooks[mr.Intn(len(notebooks))]
		// 1–4 unique tags
		k := 1 + mr.Intn(4)
		chosen := sampleTags(mr, tags, k)

		// Stagger timestamps backwards to look natural
		created := base.Add(-time.Duration(30*i+mr.Intn(60)) * time.Minute)
		// Some notes get later updates; most keep same
		updated := created.Add(time.Duration(mr.Intn(180)) * time.Minute)
		if mr.Float64() < 0.7 {
			updated = created
		}

		isTodo := mr.Float64() < 0.2
		n := api.Note{
			ID:            api.NewID(),
			Title:         fmt.Sprintf("Sample Note %03d", i+1),
			Body:          fmt.Sprintf("This is the body for sample note %03d.\n\nTags: %v\nNotebook: %s\n", i+1, chosen, parent),
			CreatedTime:   created.UnixMilli(),
			UpdatedTime:   updated.UnixMilli(),
			ParentID:      parent,
			IsTodo:        isTodo,
			TodoCompleted: isTodo && mr.Float64() < 0.5,
			Tags:          chosen,
		}
		out = append(out, n)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func sampleTags(r *mrand.Rand, pool []string, k int) []string {
	if k >= len(pool) {
		k = len(pool)
	}
	idx := r.Perm(len(pool))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
