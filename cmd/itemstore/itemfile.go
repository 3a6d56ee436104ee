/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// readItems decodes every YAML or JSON document in r as one item. A null
// value stays in the item as an explicit null.
func readItems(r io.Reader) ([]map[string]any, error) {
	dec := yaml.NewDecoder(r)

	var items []map[string]any
	for {
		var item map[string]any
		err := dec.Decode(&item)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot decode item %d: %w", len(items)+1, err)
		}
		if item == nil {
			// empty document
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// readItemFiles reads the items of all files in order. "-" reads stdin.
func readItemFiles(paths []string, stdin io.Reader) ([]map[string]any, error) {
	var all []map[string]any
	for _, path := range paths {
		var r io.Reader = stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}

		items, err := readItems(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, items...)
	}
	if len(all) == 0 {
		return nil, errors.New("no items given")
	}
	return all, nil
}

func newItemEncoder(w io.Writer) *yaml.Encoder {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc
}

// writeItems prints items as a stream of YAML documents.
func writeItems(w io.Writer, items ...any) error {
	enc := newItemEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return enc.Close()
}
