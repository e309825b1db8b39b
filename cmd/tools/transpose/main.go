// Command transpose turns one or more row-oriented CSV files into a single
// column-oriented CSV, one output column per input row.
//
// Given one.csv with rows "1,2,3" and "4,5,6" the output is:
//
//	,one,one
//	,one-00,one-01
//	0,1,4
//	1,2,5
//	2,3,6
//
// Usage:
//
//	transpose [-o out.csv] one.csv two.csv
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type table struct {
	name string
	rows [][]string
}

func readTable(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return table{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return table{}, fmt.Errorf("%s: empty file", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return table{name: name, rows: rows}, nil
}

// transpose writes the tables to w. Each input row becomes an output
// column headed by the table name and a zero-padded row index; the first
// output column holds the input column index.
func transpose(w io.Writer, tables []table) error {
	if len(tables) == 0 {
		return errors.New("no input tables")
	}
	out := csv.NewWriter(w)

	headerOne := []string{""}
	headerTwo := []string{""}
	maxCols := 0
	for _, t := range tables {
		for i, row := range t.rows {
			headerOne = append(headerOne, t.name)
			headerTwo = append(headerTwo, fmt.Sprintf("%s-%02d", t.name, i))
			if len(row) > maxCols {
				maxCols = len(row)
			}
		}
	}
	if err := out.Write(headerOne); err != nil {
		return err
	}
	if err := out.Write(headerTwo); err != nil {
		return err
	}

	for col := 0; col < maxCols; col++ {
		record := []string{strconv.Itoa(col)}
		for _, t := range tables {
			for _, row := range t.rows {
				value := ""
				if col < len(row) {
					value = row[col]
				}
				record = append(record, value)
			}
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func main() {
	output := flag.String("o", "", "output path (default stdout)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-o out.csv] file.csv [file.csv ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	tables := make([]table, 0, flag.NArg())
	for _, path := range flag.Args() {
		t, err := readTable(path)
		if err != nil {
			log.Fatalf("failed to read input: %v", err)
		}
		tables = append(tables, t)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *output, err)
		}
		defer f.Close()
		w = f
	}
	if err := transpose(w, tables); err != nil {
		log.Fatalf("failed to transpose: %v", err)
	}
}
