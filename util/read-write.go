package util

import (
	"encoding/csv"
	"fmt"
	"os"
)

func ReadCSV(path string, separator rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = separator

	return r.ReadAll()
}

func WriteCSV(path string, separator rune, data [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = separator

	if err := w.WriteAll(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
