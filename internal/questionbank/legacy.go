package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// legacyQuestion is the flat array format exported by the earlier
// spreadsheet-driven tool, keyed in Spanish.
type legacyQuestion struct {
	Categoria    string              `json:"categoria"`
	Variable     string              `json:"variable"`
	Descripcion  string              `json:"descripcion"`
	Opciones     []string            `json:"opciones"`
	Subpreguntas []legacySubQuestion `json:"subpreguntas,omitempty"`
}

type legacySubQuestion struct {
	Texto    string   `json:"texto"`
	Opciones []string `json:"opciones"`
}

func parseLegacyJSON(data []byte) (Bank, error) {
	var items []legacyQuestion
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&items); err != nil {
		return Bank{}, fmt.Errorf("parse legacy json: %w", err)
	}

	bank := Bank{Questions: make([]Question, 0, len(items))}
	for _, it := range items {
		q := Question{
			Category:    it.Categoria,
			Variable:    it.Variable,
			Description: it.Descripcion,
			Options:     it.Opciones,
		}
		for _, sp := range it.Subpreguntas {
			q.SubQuestions = append(q.SubQuestions, SubQuestion{Text: sp.Texto, Options: sp.Opciones})
		}
		bank.Questions = append(bank.Questions, q)
	}
	return bank, nil
}
