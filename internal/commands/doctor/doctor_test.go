package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (c staticCheck) Name() string { return c.name }

func (c staticCheck) Run(context.Context) Result {
	return Result{Name: c.name, Items: append([]CheckItem(nil), c.items...)}
}

func TestRunAll(t *testing.T) {
	checks := []Check{
		staticCheck{name: "a", items: []CheckItem{{Label: "x", Status: StatusPass}}},
		staticCheck{name: "b", items: []CheckItem{
			{Label: "y", Status: StatusWarn, Fixable: true},
			{Label: "z", Status: StatusFail},
		}},
	}

	results := RunAll(context.Background(), checks)

	require.Len(t, results, 2)
	assert.Equal(t, "pass", results[0].Items[0].StatusStr)
	assert.Equal(t, "warn", results[1].Items[0].StatusStr)
	assert.Equal(t, "fail", results[1].Items[1].StatusStr)

	totals := Summarize(results)
	assert.Equal(t, Totals{Passed: 1, Warned: 1, Failed: 1, Fixable: 1}, totals)
	assert.False(t, totals.Healthy())
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := RunAll(ctx, []Check{staticCheck{name: "a"}})
	assert.Empty(t, results)
}

func TestSummarize_FixedItemsAreNotFixable(t *testing.T) {
	results := []Result{{Items: []CheckItem{{Status: StatusPass, Fixable: true}}}}

	totals := Summarize(results)
	assert.Equal(t, 0, totals.Fixable)
	assert.True(t, totals.Healthy())
}
