package generator

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/aevon-lab/obrc/internal/core/record"
)

// DefaultStdDev is the spread of generated measurements around a station mean.
const DefaultStdDev = 10.0

// seedStream decorrelates the second PCG word from the seed.
const seedStream = 0x9e3779b97f4a7c15

// Generator produces synthetic "<station>;<value>" lines.
// The same stations and seed always produce the same output.
type Generator struct {
	stations []Station
	stdDev   float64
	rng      *rand.Rand
}

// New creates a generator. A non-positive stdDev selects DefaultStdDev.
func New(stations []Station, seed uint64, stdDev float64) (*Generator, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("generator needs at least one station")
	}
	if stdDev <= 0 {
		stdDev = DefaultStdDev
	}
	return &Generator{
		stations: stations,
		stdDev:   stdDev,
		rng:      rand.New(rand.NewPCG(seed, seed^seedStream)),
	}, nil
}

// Next returns a uniformly chosen station and a gaussian sample around its mean,
// rounded to one decimal digit.
func (g *Generator) Next() (string, record.Tenths) {
	s := g.stations[g.rng.IntN(len(g.stations))]
	v := math.Round((g.rng.NormFloat64()*g.stdDev + s.Mean) * 10)
	v = math.Max(-record.MaxAbsTenths, math.Min(record.MaxAbsTenths, v))
	return s.Name, record.Tenths(v)
}

// Generate writes n lines to w and returns the number of bytes written.
func (g *Generator) Generate(w io.Writer, n int) (int64, error) {
	bw := bufio.NewWriterSize(w, 1<<20)
	var written int64
	line := make([]byte, 0, 128)
	for i := 0; i < n; i++ {
		name, v := g.Next()
		line = append(line[:0], name...)
		line = append(line, record.Delimiter)
		line = record.AppendTenths(line, v)
		line = append(line, '\n')

		m, err := bw.Write(line)
		written += int64(m)
		if err != nil {
			return written, fmt.Errorf("write line %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("flush: %w", err)
	}
	return written, nil
}
