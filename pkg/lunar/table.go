package lunar

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrCorruptTable is returned when the periodic-term resource does not match
// the expected layout. The engine cannot operate without its table, so this
// is fatal at startup.
var ErrCorruptTable = errors.New("corrupt periodic-term table")

// Binary layout of the term-table resource. Little-endian throughout:
//
//	uint32  magic
//	uint8   series count (must be 3: longitude, distance, latitude)
//	per series:
//	  uint16  row count
//	  rows of int8 D, int8 M, int8 Mprime, int8 F, int32 amplitude
const (
	tableMagic  = 0x7AB45000
	numSeries   = 3
	recordWidth = 8

	// Sanity bound per series; the Meeus chapter 47 tables carry 60 rows
	// each, so anything past this is a corrupted count field.
	maxRowsPerSeries = 256
)

// PeriodicTerm is one row of a perturbation series: integer multipliers for
// the fundamental arguments D, M, M' and F, and the amplitude of the sine
// (longitude, latitude) or cosine (distance) contribution.
type PeriodicTerm struct {
	D, M, MPrime, F int8
	Amplitude       float64
}

// TermTable is the full immutable dataset, loaded exactly once at startup
// and shared read-only by every lunar position call.
type TermTable struct {
	Longitude []PeriodicTerm // sigma-l, units of 1e-6 degree
	Distance  []PeriodicTerm // sigma-r, units of 1e-3 km
	Latitude  []PeriodicTerm // sigma-b, units of 1e-6 degree
}

type tableRecord struct {
	D, M, MPrime, F int8
	Amplitude       int32
}

// LoadTable parses the binary term-table resource. Any size or layout
// mismatch fails with an error wrapping ErrCorruptTable.
func LoadTable(data []byte) (*TermTable, error) {
	r := bytes.NewReader(data)

	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrCorruptTable)
	}
	if magic != tableMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrCorruptTable, magic)
	}

	var count uint8
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrCorruptTable)
	}
	if count != numSeries {
		return nil, fmt.Errorf("%w: %d series, want %d", ErrCorruptTable, count, numSeries)
	}

	series := make([][]PeriodicTerm, numSeries)
	for i := range series {
		var rows uint16
		if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
			return nil, fmt.Errorf("%w: truncated series %d", ErrCorruptTable, i)
		}
		if rows == 0 || rows > maxRowsPerSeries {
			return nil, fmt.Errorf("%w: series %d row count %d", ErrCorruptTable, i, rows)
		}
		if r.Len() < int(rows)*recordWidth {
			return nil, fmt.Errorf("%w: series %d needs %d bytes, %d remain",
				ErrCorruptTable, i, int(rows)*recordWidth, r.Len())
		}

		terms := make([]PeriodicTerm, rows)
		for j := range terms {
			var rec tableRecord
			if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
				return nil, fmt.Errorf("%w: series %d row %d", ErrCorruptTable, i, j)
			}
			terms[j] = PeriodicTerm{
				D:         rec.D,
				M:         rec.M,
				MPrime:    rec.MPrime,
				F:         rec.F,
				Amplitude: float64(rec.Amplitude),
			}
		}
		series[i] = terms
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptTable, r.Len())
	}

	return &TermTable{
		Longitude: series[0],
		Distance:  series[1],
		Latitude:  series[2],
	}, nil
}

// LoadTableFile reads and parses a term-table resource from disk.
func LoadTableFile(path string) (*TermTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open term table: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read term table: %w", err)
	}
	return LoadTable(data)
}
