package batch_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/tokenrender/batch"
	"github.com/byte4ever/tokenrender/records"
	"github.com/byte4ever/tokenrender/tokenlist"
	"github.com/byte4ever/tokenrender/values"
)

type staticSource []records.Record

func (ss staticSource) Read(
	ctx context.Context,
) ([]records.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return ss, nil
}

type failingSource struct{}

func (failingSource) Read(
	context.Context,
) ([]records.Record, error) {
	return nil, errors.New("source down")
}

func greeting(tb testing.TB) *tokenlist.Template {
	tb.Helper()

	pa, err := tokenlist.NewParser(
		values.Tags{}.Vocabulary([]string{"FirstName", "LastName"}),
	)
	require.NoError(tb, err)

	tp, err := pa.Compile("Dear {{FirstName}} {{LastName}},")
	require.NoError(tb, err)

	return tp
}

func people(n int) staticSource {
	src := make(staticSource, 0, n)

	for idx := range n {
		src = append(src, records.Record{
			"FirstName": "P" + strings.Repeat("x", idx),
			"LastName":  "L",
		})
	}

	return src
}

func TestRun_renders_in_record_order(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	stats, err := batch.Run(context.Background(), batch.Config{
		Template:    greeting(t),
		Source:      people(50),
		Out:         &out,
		Separator:   "\n",
		Parallelism: 8,
	})

	require.NoError(t, err)
	assert.Equal(t, 50, stats.Records)
	assert.Equal(t, 50, stats.Rendered)
	assert.Zero(t, stats.Failed)
	assert.NotEmpty(t, stats.RunID)

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 50)

	for idx, line := range lines {
		assert.Equal(
			t,
			"Dear P"+strings.Repeat("x", idx)+" L,",
			line,
		)
	}
}

func TestRun_skips_failed_records(t *testing.T) {
	t.Parallel()

	src := staticSource{
		{"FirstName": "Ada", "LastName": "Lovelace"},
		{"FirstName": "Alan"},
		{"FirstName": "Grace", "LastName": "Hopper"},
	}

	var out bytes.Buffer

	stats, err := batch.Run(context.Background(), batch.Config{
		Template:  greeting(t),
		Source:    src,
		Out:       &out,
		Separator: "|",
	})

	require.ErrorIs(t, err, tokenlist.ErrMissingTokenValue)
	assert.Contains(t, err.Error(), "1 errors, first: record 2")
	assert.Equal(t, 2, stats.Rendered)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(
		t,
		"Dear Ada Lovelace,|Dear Grace Hopper,",
		out.String(),
	)
}

func TestRun_literal_token_keys(t *testing.T) {
	t.Parallel()

	pa, err := tokenlist.NewParser([]string{"quick", "fox"})
	require.NoError(t, err)

	tp, err := pa.Compile("The quick brown fox")
	require.NoError(t, err)

	var out bytes.Buffer

	_, err = batch.Run(context.Background(), batch.Config{
		Template: tp,
		Source: staticSource{
			{"quick": "slow", "fox": "cow"},
		},
		Out: &out,
	})

	require.NoError(t, err)
	assert.Equal(t, "The slow brown cow", out.String())
}

func TestRun_source_error(t *testing.T) {
	t.Parallel()

	_, err := batch.Run(context.Background(), batch.Config{
		Template: greeting(t),
		Source:   failingSource{},
		Out:      &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "running batch: source down")
}

func TestRun_cancelled_context(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer

	_, err := batch.Run(ctx, batch.Config{
		Template: greeting(t),
		Source:   people(3),
		Out:      &out,
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestRun_requires_config(t *testing.T) {
	t.Parallel()

	_, err := batch.Run(context.Background(), batch.Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestRun_empty_source(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	stats, err := batch.Run(context.Background(), batch.Config{
		Template: greeting(t),
		Source:   staticSource{},
		Out:      &out,
	})

	require.NoError(t, err)
	assert.Zero(t, stats.Records)
	assert.Empty(t, out.String())
}

func TestRenderAll_cancel_while_workers_busy(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		calls []string
	)

	started := make(chan struct{})
	release := make(chan struct{})

	render := func(rc records.Record) (string, error) {
		mu.Lock()
		calls = append(calls, rc["id"])
		mu.Unlock()

		if rc["id"] == "1" {
			close(started)
			<-release
		}

		return rc["id"], nil
	}

	done := make(chan error, 1)

	go func() {
		_, _, err := batch.RenderAllForTest(
			ctx,
			render,
			[]records.Record{{"id": "1"}, {"id": "2"}, {"id": "3"}},
			1,
		)
		done <- err
	}()

	<-started
	cancel()
	close(release)

	err := <-done

	require.ErrorIs(t, err, context.Canceled)

	mu.Lock()
	defer mu.Unlock()

	// The only worker slot was busy when the context was
	// cancelled, so no further record may be dispatched.
	assert.Equal(t, []string{"1"}, calls)
}
