package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aevon-lab/obrc/internal/core/record"
	"github.com/stretchr/testify/require"
)

func TestDefaultStations(t *testing.T) {
	stations, err := DefaultStations()
	require.NoError(t, err)
	require.Len(t, stations, 413)
	require.Equal(t, Station{Name: "Abha", Mean: 18.0}, stations[0])

	var found bool
	for _, s := range stations {
		if s.Name == "Washington, D.C." {
			found = true
			require.InDelta(t, 14.6, s.Mean, 1e-9)
		}
	}
	require.True(t, found)
}

func TestParseStations_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty list", data: "stations: []", wantErr: "no stations"},
		{name: "empty name", data: "stations:\n  - {name: \"\", mean: 1}", wantErr: "must not be empty"},
		{name: "delimiter in name", data: "stations:\n  - {name: \"a;b\", mean: 1}", wantErr: "must not contain"},
		{name: "duplicate", data: "stations:\n  - {name: a, mean: 1}\n  - {name: a, mean: 2}", wantErr: "duplicate"},
		{name: "not yaml", data: "stations: [", wantErr: "parsing stations"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStations([]byte(tc.data))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadStations_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stations:\n  - {name: Hamburg, mean: 9.7}\n"), 0o644))

	stations, err := LoadStations(path)
	require.NoError(t, err)
	require.Equal(t, []Station{{Name: "Hamburg", Mean: 9.7}}, stations)

	_, err = LoadStations(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGenerator_Generate(t *testing.T) {
	stations := []Station{{Name: "Hamburg", Mean: 9.7}, {Name: "Palembang", Mean: 27.3}}
	g, err := New(stations, 42, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := g.Generate(&buf, 1000)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1000)
	for _, line := range lines {
		rec, err := record.ParseLine([]byte(line))
		require.NoError(t, err, line)
		require.Contains(t, []string{"Hamburg", "Palembang"}, string(rec.Key))
		require.Regexp(t, `^-?\d+\.\d$`, line[len(rec.Key)+1:])
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	stations, err := DefaultStations()
	require.NoError(t, err)

	render := func(seed uint64) string {
		g, err := New(stations, seed, DefaultStdDev)
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = g.Generate(&buf, 500)
		require.NoError(t, err)
		return buf.String()
	}

	require.Equal(t, render(7), render(7))
	require.NotEqual(t, render(7), render(8))
}

func TestNew_NoStations(t *testing.T) {
	_, err := New(nil, 1, 1)
	require.Error(t, err)
}
