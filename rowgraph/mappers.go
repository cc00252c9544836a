package rowgraph

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// asciiPunctuation matches Python's string.punctuation exactly (ASCII
// punctuation only), not Unicode's broader punctuation class, so
// FilterPunctuation strips precisely the same characters
// original_source/lib/operations.py's FilterPunctuation does.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// FilterPunctuation strips ASCII punctuation from the string in column.
// Missing column defaults to "".
func FilterPunctuation(column string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		s, _ := row.GetOr(column, "").(string)
		out := row.Copy()
		out[column] = strings.Map(func(r rune) rune {
			if strings.ContainsRune(asciiPunctuation, r) {
				return -1
			}
			return r
		}, s)
		return []Row{out}, nil
	})
}

// LowerCase replaces column with its lowercased form. Missing column
// defaults to "".
func LowerCase(column string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		s, _ := row.GetOr(column, "").(string)
		out := row.Copy()
		out[column] = strings.ToLower(s)
		return []Row{out}, nil
	})
}

// Split splits the string in column by sep (any run of whitespace when sep
// is ""), emitting one row per token with column replaced. Missing column
// defaults to "".
func Split(column string, sep string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		s, _ := row.GetOr(column, "").(string)
		var tokens []string
		if sep == "" {
			tokens = strings.Fields(s)
		} else {
			tokens = strings.Split(s, sep)
		}
		out := make([]Row, len(tokens))
		for i, tok := range tokens {
			r := row.Copy()
			r[column] = tok
			out[i] = r
		}
		return out, nil
	})
}

// Filter emits row iff pred(row) is true.
func Filter(pred func(Row) bool) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		if pred(row) {
			return []Row{row}, nil
		}
		return nil, nil
	})
}

// Project emits a new row containing exactly the listed columns. A missing
// column is a schema error (no documented default for Project).
func Project(columns []string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		out := make(Row, len(columns))
		for _, c := range columns {
			v, ok := row.Get(c)
			if !ok {
				return nil, fmt.Errorf("project column %q: %w", c, ErrSchema)
			}
			out[c] = v
		}
		return []Row{out}, nil
	})
}

// Product sets row[out] to the product of the listed numeric columns. A
// missing column is a schema error.
func Product(columns []string, out string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		product := 1.0
		isFloat := false
		for _, c := range columns {
			v, ok := row.Get(c)
			if !ok {
				return nil, fmt.Errorf("product column %q: %w", c, ErrSchema)
			}
			f, wasFloat, err := numericValue(v)
			if err != nil {
				return nil, fmt.Errorf("product column %q: %w", c, err)
			}
			isFloat = isFloat || wasFloat
			product *= f
		}
		result := row.Copy()
		if isFloat {
			result[out] = product
		} else {
			result[out] = int64(product)
		}
		return []Row{result}, nil
	})
}

func numericValue(v any) (float64, bool, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), false, nil
	case int:
		return float64(n), false, nil
	case float64:
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("value %v is not numeric", v)
	}
}

// InverseFrequency sets row[out] = log(row[numCol] / row[denCol]). out
// defaults to "idf" when empty.
func InverseFrequency(numCol, denCol, out string) Mapper {
	if out == "" {
		out = "idf"
	}
	return MapperFunc(func(row Row) ([]Row, error) {
		num, ok := row.Get(numCol)
		if !ok {
			return nil, fmt.Errorf("inverse frequency column %q: %w", numCol, ErrSchema)
		}
		den, ok := row.Get(denCol)
		if !ok {
			return nil, fmt.Errorf("inverse frequency column %q: %w", denCol, ErrSchema)
		}
		numF, _, err := numericValue(num)
		if err != nil {
			return nil, err
		}
		denF, _, err := numericValue(den)
		if err != nil {
			return nil, err
		}
		result := row.Copy()
		result[out] = math.Log(numF / denF)
		return []Row{result}, nil
	})
}

const earthRadiusKm = 6373.0

// CalculateDistance computes the great-circle distance in kilometers
// between two (lon, lat) degree pairs via the haversine formula, following
// original_source/lib/operations.py's CalculateDistance.
func CalculateDistance(a, b, out string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		av, ok := row.Get(a)
		if !ok {
			return nil, fmt.Errorf("calculate distance column %q: %w", a, ErrSchema)
		}
		bv, ok := row.Get(b)
		if !ok {
			return nil, fmt.Errorf("calculate distance column %q: %w", b, ErrSchema)
		}
		aPair, ok := av.([2]float64)
		if !ok {
			return nil, fmt.Errorf("calculate distance column %q: %w", a, ErrSchema)
		}
		bPair, ok := bv.([2]float64)
		if !ok {
			return nil, fmt.Errorf("calculate distance column %q: %w", b, ErrSchema)
		}

		lonFirst, latFirst := deg2rad(aPair[0]), deg2rad(aPair[1])
		lonSecond, latSecond := deg2rad(bPair[0]), deg2rad(bPair[1])
		lonDelta := lonSecond - lonFirst
		latDelta := latSecond - latFirst

		sinSqLat := math.Sin(latDelta / 2)
		sinSqLat *= sinSqLat
		sinSqLon := math.Sin(lonDelta / 2)
		sinSqLon *= sinSqLon
		term := sinSqLat + math.Cos(latFirst)*math.Cos(latSecond)*sinSqLon

		result := row.Copy()
		result[out] = 2 * earthRadiusKm * math.Atan2(math.Sqrt(term), math.Sqrt(1-term))
		return []Row{result}, nil
	})
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

const (
	timestampFractional = "20060102T150405.999999"
	timestampWhole      = "20060102T150405"
)

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampFractional, s); err == nil {
		return t, nil
	}
	return time.Parse(timestampWhole, s)
}

var weekdayAbbrev = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekDay derives a three-letter English weekday abbreviation from a
// timestamp in dateCol, trying the fractional-seconds format first and
// falling back to the whole-seconds format.
func WeekDay(dateCol, out string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		s, ok := row.Get(dateCol)
		if !ok {
			return nil, fmt.Errorf("weekday column %q: %w", dateCol, ErrSchema)
		}
		ss, ok := s.(string)
		if !ok {
			return nil, fmt.Errorf("weekday column %q: %w", dateCol, ErrSchema)
		}
		t, err := parseTimestamp(ss)
		if err != nil {
			return nil, fmt.Errorf("weekday column %q: %w: %v", dateCol, ErrParse, err)
		}
		result := row.Copy()
		result[out] = weekdayAbbrev[int(t.Weekday())]
		return []Row{result}, nil
	})
}

// Hour derives the integer hour (0-23) from a timestamp in dateCol, same
// format handling as WeekDay.
func Hour(dateCol, out string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		s, ok := row.Get(dateCol)
		if !ok {
			return nil, fmt.Errorf("hour column %q: %w", dateCol, ErrSchema)
		}
		ss, ok := s.(string)
		if !ok {
			return nil, fmt.Errorf("hour column %q: %w", dateCol, ErrSchema)
		}
		t, err := parseTimestamp(ss)
		if err != nil {
			return nil, fmt.Errorf("hour column %q: %w: %v", dateCol, ErrParse, err)
		}
		result := row.Copy()
		result[out] = int64(t.Hour())
		return []Row{result}, nil
	})
}

// TimeDelta computes end - start in floating-point seconds.
func TimeDelta(start, end, out string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		startVal, ok := row.Get(start)
		if !ok {
			return nil, fmt.Errorf("time delta column %q: %w", start, ErrSchema)
		}
		endVal, ok := row.Get(end)
		if !ok {
			return nil, fmt.Errorf("time delta column %q: %w", end, ErrSchema)
		}
		startStr, ok := startVal.(string)
		if !ok {
			return nil, fmt.Errorf("time delta column %q: %w", start, ErrSchema)
		}
		endStr, ok := endVal.(string)
		if !ok {
			return nil, fmt.Errorf("time delta column %q: %w", end, ErrSchema)
		}
		startTime, err := parseTimestamp(startStr)
		if err != nil {
			return nil, fmt.Errorf("time delta column %q: %w: %v", start, ErrParse, err)
		}
		endTime, err := parseTimestamp(endStr)
		if err != nil {
			return nil, fmt.Errorf("time delta column %q: %w: %v", end, ErrParse, err)
		}
		result := row.Copy()
		result[out] = endTime.Sub(startTime).Seconds()
		return []Row{result}, nil
	})
}

// Speed computes dist / time * 3600 (km/h given km and seconds).
func Speed(distCol, timeCol, out string) Mapper {
	return MapperFunc(func(row Row) ([]Row, error) {
		d, ok := row.Get(distCol)
		if !ok {
			return nil, fmt.Errorf("speed column %q: %w", distCol, ErrSchema)
		}
		t, ok := row.Get(timeCol)
		if !ok {
			return nil, fmt.Errorf("speed column %q: %w", timeCol, ErrSchema)
		}
		dF, _, err := numericValue(d)
		if err != nil {
			return nil, err
		}
		tF, _, err := numericValue(t)
		if err != nil {
			return nil, err
		}
		result := row.Copy()
		result[out] = dF / tF * 3600
		return []Row{result}, nil
	})
}
