// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context) ([]Row, error)

func (f sourceFunc) Load(ctx context.Context) ([]Row, error) { return f(ctx) }

func TestGenerate(t *testing.T) {
	rows := Generate(DefaultMockRows)
	require.Len(t, rows, 1500)

	assert.Equal(t, Row{ID: "0", Name: "Record #0", Type: "Voice", Duration: "5:22", Date: "2024-01-10"}, rows[0])
	assert.Equal(t, "Video", rows[1].Type)
	assert.Equal(t, "Record #1499", rows[1499].Name)
	require.NoError(t, ValidateUnique(rows))

	assert.Empty(t, Generate(-1))
}

func TestValidateUnique(t *testing.T) {
	err := ValidateUnique([]Row{{ID: "a"}, {ID: "b"}, {ID: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestFilter(t *testing.T) {
	rows := Generate(20)
	assert.Len(t, Filter(rows, ""), 20)
	assert.Len(t, Filter(rows, "video"), 10)
	assert.Len(t, Filter(rows, "record #1"), 11) // 1, 10..19
	assert.Empty(t, Filter(rows, "nothing"))
}

func TestMockSource(t *testing.T) {
	rows, err := MockSource{}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, DefaultMockRows)

	rows, err = MockSource{Rows: 3}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = MockSource{}.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type memCache struct {
	rows    []Row
	saves   int
	loadErr error
	saveErr error
}

func (m *memCache) LoadHistory(context.Context) ([]Row, error) { return m.rows, m.loadErr }
func (m *memCache) SaveHistory(_ context.Context, rows []Row) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows = rows
	return nil
}

func TestCachedSource_GeneratesOnce(t *testing.T) {
	calls := 0
	origin := sourceFunc(func(ctx context.Context) ([]Row, error) {
		calls++
		return Generate(5), nil
	})
	cache := &memCache{}
	src := &CachedSource{Origin: origin, Cache: cache}

	for i := 0; i < 3; i++ {
		rows, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, rows, 5)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.saves)
}

func TestCachedSource_CacheFailuresAreNotFatal(t *testing.T) {
	cache := &memCache{loadErr: errors.New("disk"), saveErr: errors.New("full")}
	src := &CachedSource{Origin: MockSource{Rows: 2}, Cache: cache}
	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCachedSource_RejectsDuplicates(t *testing.T) {
	origin := sourceFunc(func(context.Context) ([]Row, error) {
		return []Row{{ID: "1"}, {ID: "1"}}, nil
	})
	_, err := (&CachedSource{Origin: origin, Cache: &memCache{}}).Load(context.Background())
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	rows := Generate(2)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, rows, FormatCSV))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Type,Duration,Date", lines[0])
	assert.Equal(t, "1,Record #1,Video,5:22,2024-01-10", lines[2])

	buf.Reset()
	require.NoError(t, Export(&buf, rows, FormatJSON))
	var decoded []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)

	buf.Reset()
	require.NoError(t, Export(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())

	assert.Error(t, Export(&buf, rows, Format("xml")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
