package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigParse is returned when the run configuration file exists but is
// not valid JSON.
var ErrConfigParse = errors.New("run configuration file is not valid JSON")

// ErrConfigMissing is returned when the run configuration file is absent and
// the caller requires one.
var ErrConfigMissing = errors.New("run configuration file not found")

// RunConfig is the per-run configuration document. It is assembled once at
// startup and passed by value into the pipeline; nothing mutates it after
// load.
type RunConfig struct {
	CustomerNo string `json:"customerNo"`
	Warehouse  string `json:"warehouse"`
	ShipVia    string `json:"shipVia"`

	// Shiptos maps a shipto alias as scanned in the field to the canonical
	// shipto code used for backorder matching and order entry.
	Shiptos map[string]string `json:"shiptos"`

	// PO maps each canonical shipto to its purchase order number.
	PO map[string]string `json:"PO"`

	// BackorderColumns maps backorder extract fields to columns. A value is
	// matched against the header row by name first; a value that looks like
	// a spreadsheet column reference ("AB") addresses by position instead.
	BackorderColumns map[string]string `json:"backorderColumns,omitempty"`
}

// Backorder extract field names accepted in BackorderColumns.
const (
	FieldEntryDate  = "entry_date"
	FieldProduct    = "product"
	FieldBackorder  = "backorder"
	FieldCustomerNo = "customer_no"
	FieldShipto     = "shipto"
)

// defaultBackorderColumns matches the column positions of the standard ERP
// backorder extract.
func defaultBackorderColumns() map[string]string {
	return map[string]string{
		FieldEntryDate:  "D",
		FieldProduct:    "F",
		FieldBackorder:  "W",
		FieldCustomerNo: "AB",
		FieldShipto:     "AD",
	}
}

// Template returns a placeholder run configuration for the operator to fill
// in.
func Template() RunConfig {
	return RunConfig{
		CustomerNo: "",
		Warehouse:  "",
		ShipVia:    "",
		Shiptos: map[string]string{
			"shipto_alias_1": "shipto_1",
			"shipto_alias_2": "shipto_2",
		},
		PO: map[string]string{
			"shipto_1": "0000000",
			"shipto_2": "1111111",
		},
		BackorderColumns: defaultBackorderColumns(),
	}
}

// LoadRunConfig reads the run configuration from path. When the file does
// not exist the result depends on require: with require set the error is
// ErrConfigMissing; otherwise a placeholder template is written to path for
// the operator and returned with created=true so the run can proceed.
func LoadRunConfig(path string, require bool) (cfg RunConfig, created bool, err error) {
	const op = "LoadRunConfig"

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return RunConfig{}, false, fmt.Errorf("%s: %w", op, err)
		}
		if require {
			return RunConfig{}, false, fmt.Errorf("%s: %s: %w", op, path, ErrConfigMissing)
		}
		cfg = Template()
		if err := WriteRunConfig(path, cfg); err != nil {
			return RunConfig{}, false, fmt.Errorf("%s: failed to write sample config: %w", op, err)
		}
		return cfg, true, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, false, fmt.Errorf("%s: %s: %w: %v", op, path, ErrConfigParse, err)
	}

	if cfg.BackorderColumns == nil {
		cfg.BackorderColumns = defaultBackorderColumns()
	}

	return cfg, false, nil
}

// WriteRunConfig writes cfg to path as indented JSON, creating parent
// directories as needed.
func WriteRunConfig(path string, cfg RunConfig) error {
	const op = "WriteRunConfig"

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
