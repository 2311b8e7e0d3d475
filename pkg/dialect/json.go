package dialect

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrParse marks every failure to turn a document into Data: malformed JSON,
// wrongly typed fields, or entities without a name.
var ErrParse = errors.New("invalid dialect data")

// Load decodes a dialect JSON document. Missing lists and optional fields
// default to their zero values; unknown fields are ignored.
func Load(data []byte) (*Data, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.Wrap(ErrParse, "dialect document must be a JSON object")
	}
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding dialect JSON"), ErrParse)
	}
	return New(d)
}

// LoadFile reads and decodes a dialect JSON file.
func LoadFile(path string) (*Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading dialect file %s", path)
	}
	return Load(data)
}

// New validates d and builds its lookup indexes. The returned Data must not be
// modified afterwards.
func New(d Data) (*Data, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	d.idx = buildIndex(&d)
	return &d, nil
}

// ToJSON serializes the dataset with the same field names Load accepts.
func (d *Data) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

// ToJSONIndent serializes the dataset to indented JSON.
func (d *Data) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func (d *Data) validate() error {
	for i := range d.Functions {
		if err := requireName("functions", i, d.Functions[i].Name); err != nil {
			return err
		}
	}
	for i, kw := range d.Keywords {
		if strings.TrimSpace(kw) == "" {
			return errors.Wrapf(ErrParse, "keywords[%d]: empty keyword", i)
		}
	}
	for i := range d.DataTypes {
		if err := requireName("dataTypes", i, d.DataTypes[i].Name); err != nil {
			return err
		}
	}
	for i := range d.TableEngines {
		if err := requireName("tableEngines", i, d.TableEngines[i].Name); err != nil {
			return err
		}
	}
	for i := range d.Formats {
		if err := requireName("formats", i, d.Formats[i].Name); err != nil {
			return err
		}
	}
	for i := range d.TableFunctions {
		if err := requireName("tableFunctions", i, d.TableFunctions[i].Name); err != nil {
			return err
		}
	}
	for i, c := range d.AggregateCombinators {
		if strings.TrimSpace(c) == "" {
			return errors.Wrapf(ErrParse, "aggregateCombinators[%d]: empty combinator", i)
		}
	}
	for i := range d.Settings {
		if err := requireName("settings", i, d.Settings[i].Name); err != nil {
			return err
		}
	}
	for i := range d.MergeTreeSettings {
		if err := requireName("mergeTreeSettings", i, d.MergeTreeSettings[i].Name); err != nil {
			return err
		}
	}
	return nil
}

func requireName(list string, i int, name string) error {
	if name == "" {
		return errors.Wrapf(ErrParse, "%s[%d]: missing required field %q", list, i, "name")
	}
	return nil
}
