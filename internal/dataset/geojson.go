package dataset

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

type geoJSONLoader struct{}

func (geoJSONLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".geojson")
}

func (geoJSONLoader) Load(path string, opt LoadOptions) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	return ReadGeoJSON(b, opt.MaxRows)
}

type jsonRowsLoader struct{}

func (jsonRowsLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".json")
}

func (jsonRowsLoader) Load(path string, opt LoadOptions) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return ReadJSONRows(b, opt.MaxRows)
}

// ReadGeoJSON turns the properties of each feature in a FeatureCollection
// into a row. Geometry is ignored.
func ReadGeoJSON(data []byte, maxRows int) (*Dataset, error) {
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties json.RawMessage `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("parse geojson: expected FeatureCollection, got %q", fc.Type)
	}
	objs := make([]json.RawMessage, len(fc.Features))
	for i, f := range fc.Features {
		objs[i] = f.Properties
	}
	return rowsFromObjects(objs, maxRows)
}

// ReadJSONRows reads a JSON array of flat objects.
func ReadJSONRows(data []byte, maxRows int) (*Dataset, error) {
	var objs []json.RawMessage
	if err := json.Unmarshal(data, &objs); err != nil {
		return nil, fmt.Errorf("parse json rows: %w", err)
	}
	return rowsFromObjects(objs, maxRows)
}

// rowsFromObjects decodes each object into a row. Columns are the union of
// keys in first-seen order.
func rowsFromObjects(objs []json.RawMessage, maxRows int) (*Dataset, error) {
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	ds := &Dataset{}
	seen := map[string]struct{}{}
	for i, raw := range objs {
		if len(ds.Rows) >= maxRows {
			break
		}
		row, err := decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", i+1, err)
		}
		for _, k := range row.keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				ds.Columns = append(ds.Columns, k)
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) < len(objs) {
		ds.Warnings = append(ds.Warnings, truncatedWarning(len(ds.Rows), len(objs)))
	}
	return ds, nil
}

func decodeObject(raw json.RawMessage) (Row, error) {
	r := NewRow()
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return r, nil
	}
	keys, err := objectKeys(trimmed)
	if err != nil {
		return r, err
	}
	var vals map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&vals); err != nil {
		return r, err
	}
	for _, k := range keys {
		r.Set(k, ValueOf(vals[k]))
	}
	return r, nil
}

// objectKeys lists the top-level keys of a JSON object in document order.
func objectKeys(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys []string
	depth, expectKey := 1, true
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return keys, nil
				}
				if depth == 1 {
					expectKey = true
				}
			}
			continue
		}
		if depth != 1 {
			continue
		}
		if expectKey {
			k, _ := tok.(string)
			keys = append(keys, k)
		}
		expectKey = !expectKey
	}
}
