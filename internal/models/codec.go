package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/soltixdb/tsfunc/internal/utils"
)

// MarshalJSON encodes a value as a JSON number or null.
// NaN and infinities have no JSON form and are encoded as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.Float, 'g', -1, 64), nil
}

// UnmarshalJSON accepts a number, a numeric string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Null
		return nil
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid sample value: %w", err)
	}

	f, ok := utils.ToFloat64(raw)
	if !ok {
		return fmt.Errorf("invalid sample value: %s", data)
	}
	*v = Float(f)
	return nil
}

// MarshalJSON encodes a point as [value, timestamp].
func (p Point) MarshalJSON() ([]byte, error) {
	value, err := p.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(value)+24)
	buf = append(buf, '[')
	buf = append(buf, value...)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, p.Timestamp, 10)
	buf = append(buf, ']')
	return buf, nil
}

// UnmarshalJSON decodes a [value, timestamp] pair.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("datapoint must be a [value, timestamp] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("datapoint must have 2 elements, got %d", len(pair))
	}

	var value Value
	if err := value.UnmarshalJSON(pair[0]); err != nil {
		return err
	}

	var rawTs interface{}
	dec := json.NewDecoder(bytes.NewReader(pair[1]))
	dec.UseNumber()
	if err := dec.Decode(&rawTs); err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}
	ts, ok := utils.ToTimestamp(rawTs)
	if !ok {
		return fmt.Errorf("invalid timestamp: %s", pair[1])
	}

	p.Value = value
	p.Timestamp = ts
	return nil
}
