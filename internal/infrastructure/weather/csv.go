// Package weather reads wind observations and forecasts exported as CSV.
//
// Two layouts are understood: the raw Open-Meteo export (a metadata block,
// a blank line, then the hourly table) and the cleaned table written by the
// weather preprocessing step (the hourly table alone). Forecast tables whose
// columns carry a horizon suffix such as "_t+1" are accepted as well; lagged
// feature columns ("_lag3") are never used.
package weather

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/ballistic/internal/domain/physics"
)

const (
	speedColumn     = "wind_speed_100m"
	directionColumn = "wind_direction_100m"
	timeColumn      = "time"
	lagMarker       = "_lag"
	byteOrderMark   = "\ufeff"
)

var (
	// ErrNoWindColumns is returned when no header row names both wind columns.
	ErrNoWindColumns = errors.New("no wind_speed_100m and wind_direction_100m columns")
	// ErrNoWindData is returned when the wind columns hold no numeric value.
	ErrNoWindData = errors.New("no wind values")
	// ErrUnknownUnit is returned for a speed unit that cannot be converted to m/s.
	ErrUnknownUnit = errors.New("unknown wind speed unit")
)

// speedUnits converts a speed in the named unit to m/s.
var speedUnits = map[string]float64{
	"km/h": 1 / physics.KilometresPerHour,
	"m/s":  1,
	"mp/h": 0.44704,
	"mph":  0.44704,
	"kn":   0.514444,
}

var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// CSVSource reads the latest wind from a weather CSV file.
// The file is read again on every call so edits are picked up.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSVSource for path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name returns the file path.
func (s *CSVSource) Name() string {
	return s.path
}

// Latest returns the most recent wind in the file. Each column keeps its
// last numeric value, so a trailing row with a gap falls back to the row
// before it.
func (s *CSVSource) Latest(ctx context.Context) (physics.Wind, error) {
	if err := ctx.Err(); err != nil {
		return physics.Wind{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return physics.Wind{}, fmt.Errorf("open weather csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadLatest(ctx, f)
}

type columns struct {
	speed     int
	direction int
	time      int
	factor    float64
}

// ReadLatest parses a weather table from r and returns its latest wind.
func ReadLatest(ctx context.Context, r io.Reader) (physics.Wind, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var (
		cols      *columns
		speed     = math.NaN()
		direction = math.NaN()
		at        time.Time
	)

	for line := 0; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return physics.Wind{}, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return physics.Wind{}, fmt.Errorf("parse weather csv: %w", err)
		}

		if cols == nil {
			found, err := findColumns(record)
			if err != nil {
				return physics.Wind{}, err
			}
			cols = found
			continue
		}

		if v, ok := cell(record, cols.speed); ok {
			speed = v
			if cols.time >= 0 && cols.time < len(record) {
				at = parseTime(record[cols.time])
			}
		}
		if v, ok := cell(record, cols.direction); ok {
			direction = v
		}
	}

	if cols == nil {
		return physics.Wind{}, ErrNoWindColumns
	}
	if math.IsNaN(speed) || math.IsNaN(direction) {
		return physics.Wind{}, ErrNoWindData
	}

	wind := physics.Wind{Speed: speed * cols.factor, Direction: direction, At: at}
	if err := wind.Validate(); err != nil {
		return physics.Wind{}, err
	}
	return wind, nil
}

// findColumns returns nil, nil when record is not the table header.
func findColumns(record []string) (*columns, error) {
	speed, unit := findColumn(record, speedColumn)
	direction, _ := findColumn(record, directionColumn)
	if speed < 0 || direction < 0 {
		return nil, nil
	}

	if unit == "" {
		unit = "km/h"
	}
	factor, ok := speedUnits[unit]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}

	cols := &columns{speed: speed, direction: direction, time: -1, factor: factor}
	for i, name := range record {
		if strings.EqualFold(cleanName(name), timeColumn) {
			cols.time = i
			break
		}
	}
	return cols, nil
}

// findColumn picks the plain column for base, falling back to the first
// forecast column. It returns the index and the unit in parentheses.
func findColumn(record []string, base string) (int, string) {
	fallback, fallbackUnit := -1, ""
	for i, raw := range record {
		name := cleanName(raw)
		if !strings.HasPrefix(name, base) {
			continue
		}
		rest := name[len(base):]
		unit := ""
		if strings.HasPrefix(rest, " (") {
			end := strings.IndexByte(rest, ')')
			if end < 0 {
				continue
			}
			unit = strings.TrimSpace(rest[2:end])
			rest = rest[end+1:]
		}
		if strings.Contains(rest, lagMarker) {
			continue
		}
		if rest == "" {
			return i, unit
		}
		if fallback < 0 {
			fallback, fallbackUnit = i, unit
		}
	}
	return fallback, fallbackUnit
}

func cleanName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
}

func cell(record []string, i int) (float64, bool) {
	if i >= len(record) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
