package repository

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"loan-fee/domain"
)

//go:embed fees/default.json
var defaultFees []byte

// yamlFeeTable is the on-disk layout: term -> amount -> fee. JSON documents
// are read through the same decoder.
type yamlFeeTable struct {
	Fees map[string]map[string]float64 `yaml:"fees"`
}

// cells is an intermediate term -> amount -> fee map used while merging files.
type cells map[int]map[string]cell

type cell struct {
	amount float64
	fee    float64
}

// DefaultFeeTable returns the table compiled into the binary.
func DefaultFeeTable() (*domain.FeeTable, error) {
	c := cells{}
	if err := c.merge("embedded:fees/default.json", defaultFees); err != nil {
		return nil, err
	}
	return c.build("embedded:fees/default.json")
}

// LoadFeeTable reads a table from path. A directory is read as a set of
// .json/.yaml/.yml files merged in lexical order, later files overriding
// earlier cells. An empty path yields the embedded default.
func LoadFeeTable(path string) (*domain.FeeTable, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultFeeTable()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "repository.load_fee_table",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	files := []string{path}
	if info.IsDir() {
		files, err = feeFiles(path)
		if err != nil {
			return nil, err
		}
	}

	c := cells{}
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "repository.load_fee_table",
				Kind: domain.KindNotFound,
				Path: f,
				Err:  err,
			}
		}
		if err := c.merge(f, b); err != nil {
			return nil, err
		}
	}
	return c.build(path)
}

// ParseFeeTable decodes a single JSON or YAML document.
func ParseFeeTable(data []byte) (*domain.FeeTable, error) {
	c := cells{}
	if err := c.merge("", data); err != nil {
		return nil, err
	}
	return c.build("")
}

func feeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "repository.load_fee_table",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, &domain.OpError{
			Op:   "repository.load_fee_table",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  fmt.Errorf("no fee files in directory: %w", domain.ErrNotFound),
		}
	}
	return files, nil
}

func (c cells) merge(path string, data []byte) error {
	var doc yamlFeeTable
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &domain.OpError{
			Op:   "repository.parse_fee_table",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Within one document two keys naming the same term or amount are an
	// error. Across files the later cell wins.
	termKeys := make(map[int]string, len(doc.Fees))
	for _, termKey := range sortedKeys(doc.Fees) {
		row := doc.Fees[termKey]
		term, err := strconv.Atoi(strings.TrimSpace(termKey))
		if err != nil {
			return invalidField(path, "fees."+termKey, "term must be an integer")
		}
		if prev, dup := termKeys[term]; dup {
			return invalidField(path, "fees."+termKey, fmt.Sprintf("duplicates term key %q", prev))
		}
		termKeys[term] = termKey
		if c[term] == nil {
			c[term] = map[string]cell{}
		}

		amountKeys := make(map[string]string, len(row))
		for _, amountKey := range sortedKeys(row) {
			amount, err := decimal.NewFromString(strings.TrimSpace(amountKey))
			if err != nil {
				return invalidField(path, "fees."+termKey+"."+amountKey, "amount must be a decimal number")
			}
			// Keyed by the canonical decimal so "1000" and "1000.00" collide.
			canonical := amount.String()
			if prev, dup := amountKeys[canonical]; dup {
				return invalidField(path, "fees."+termKey+"."+amountKey, fmt.Sprintf("duplicates amount key %q", prev))
			}
			amountKeys[canonical] = amountKey
			c[term][canonical] = cell{amount: amount.InexactFloat64(), fee: row[amountKey]}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c cells) build(path string) (*domain.FeeTable, error) {
	rows := make(map[int][]domain.FeeBand, len(c))
	for term, row := range c {
		bands := make([]domain.FeeBand, 0, len(row))
		for _, v := range row {
			bands = append(bands, domain.FeeBand{Amount: v.amount, Fee: v.fee})
		}
		rows[term] = bands
	}

	table, err := domain.NewFeeTable(rows)
	if err != nil {
		if oe, ok := err.(*domain.OpError); ok && oe.Path == "" {
			oe.Path = path
		}
		return nil, err
	}
	return table, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "repository.parse_fee_table",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
