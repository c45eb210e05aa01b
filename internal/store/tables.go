package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/decisionmotor/maturity/ent/schema"
)

// Table names, following ent's snake-case plural convention.
const (
	responsesTable   = "responses"
	submissionsTable = "submissions"
	llmEventsTable   = "llm_request_events"
)

// entities lists every ent schema persisted by the store, with its table.
var entities = []struct {
	table  string
	schema ent.Interface
}{
	{submissionsTable, schema.Submission{}},
	{responsesTable, schema.Response{}},
	{llmEventsTable, schema.LLMRequestEvent{}},
}

// migrationTables converts the ent schemas into migration tables.
func migrationTables() ([]*entschema.Table, error) {
	tables := make([]*entschema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableFromSchema(e.table, e.schema)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", e.table, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// tableFromSchema builds the SQL table for an ent schema: an auto-increment
// id primary key, then mixin fields, then the schema's own fields and the
// indexes declared on both.
func tableFromSchema(name string, s ent.Interface) (*entschema.Table, error) {
	t := entschema.NewTable(name)
	t.AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		t.AddColumn(columnFromDescriptor(d))
	}

	prefix := strings.ReplaceAll(reflect.TypeOf(s).Name(), "_", "")
	prefix = strings.ToLower(prefix)
	for _, ix := range indexes {
		d := ix.Descriptor()
		for _, c := range d.Fields {
			if !t.HasColumn(c) {
				return nil, fmt.Errorf("index on unknown column %q", c)
			}
		}
		idxName := d.StorageKey
		if idxName == "" {
			idxName = prefix + "_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(idxName, d.Unique, d.Fields)
	}
	return t, nil
}

func columnFromDescriptor(d *field.Descriptor) *entschema.Column {
	name := d.Name
	if d.StorageKey != "" {
		name = d.StorageKey
	}
	c := &entschema.Column{
		Name:       name,
		Type:       d.Info.Type,
		SchemaType: d.SchemaType,
		Size:       int64(d.Size),
		Unique:     d.Unique,
		Nullable:   d.Optional,
		Comment:    d.Comment,
	}
	// Function defaults (time.Now) are applied by the repos on insert.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}
