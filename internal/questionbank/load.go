package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, normalizes, and validates a question bank file.
// JSON and YAML are accepted; the format is chosen by extension.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	bank, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bank, nil
}

// Parse decodes a bank from raw bytes. ext is a file extension such as
// ".json" or ".yaml"; anything other than ".json" is treated as YAML.
func Parse(data []byte, ext string) (*Bank, error) {
	var (
		bank Bank
		err  error
	)
	if strings.ToLower(ext) == ".json" {
		bank, err = parseJSON(data)
	} else {
		bank, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}
	Normalize(&bank)
	if err := Validate(&bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

func parseJSON(data []byte) (Bank, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return parseLegacyJSON(trimmed)
	}
	if err := validateDocument(trimmed); err != nil {
		return Bank{}, err
	}

	var bank Bank
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&bank); err != nil {
		return Bank{}, fmt.Errorf("parse json: %w", err)
	}
	var extra any
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Bank{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Bank{}, fmt.Errorf("parse json: %w", err)
	}
	return bank, nil
}

func parseYAML(data []byte) (Bank, error) {
	var bank Bank
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bank); err != nil {
		if err == io.EOF {
			return Bank{}, fmt.Errorf("parse yaml: empty document")
		}
		return Bank{}, fmt.Errorf("parse yaml: %w", err)
	}
	var extra any
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Bank{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Bank{}, fmt.Errorf("parse yaml: %w", err)
	}
	return bank, nil
}

// Normalize trims whitespace from every label in place.
func Normalize(b *Bank) {
	b.Title = strings.TrimSpace(b.Title)
	b.Objective = strings.TrimSpace(b.Objective)
	for i := range b.Questions {
		q := &b.Questions[i]
		q.Category = strings.TrimSpace(q.Category)
		q.Variable = strings.TrimSpace(q.Variable)
		q.Description = strings.TrimSpace(q.Description)
		trimAll(q.Options)
		for j := range q.SubQuestions {
			q.SubQuestions[j].Text = strings.TrimSpace(q.SubQuestions[j].Text)
			trimAll(q.SubQuestions[j].Options)
		}
	}
	if b.Title == "" {
		b.Title = DefaultTitle
	}
}

func trimAll(ss []string) {
	for i := range ss {
		ss[i] = strings.TrimSpace(ss[i])
	}
}
