package compliance

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

//go:embed standards.json
var embeddedStandards []byte

// requirementsSchema validates a standards file before it is trusted. The
// enum lists are generated from the constants package so the schema can
// never drift from the code.
func requirementsSchema() string {
	kinds := make([]string, 0)
	for _, k := range constants.ParameterKinds() {
		kinds = append(kinds, fmt.Sprintf("%q", string(k)))
	}
	types := make([]string, 0)
	for _, t := range constants.RoomTypes() {
		types = append(types, fmt.Sprintf("%q", string(t)))
	}
	return fmt.Sprintf(`{
		"type": "object",
		"required": ["requirements"],
		"properties": {
			"requirements": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["standard_id", "application_type", "parameter_kind"],
					"additionalProperties": false,
					"properties": {
						"standard_id": {"type": "string", "minLength": 1},
						"application_type": {"enum": [%s]},
						"parameter_kind": {"enum": [%s]},
						"minimum": {"type": "number"},
						"maximum": {"type": "number"},
						"description": {"type": "string"}
					},
					"anyOf": [
						{"required": ["minimum"]},
						{"required": ["maximum"]}
					]
				}
			}
		}
	}`, strings.Join(types, ","), strings.Join(kinds, ","))
}

// DB is the read-only standards-requirements table, loaded once at process
// start. Pipeline workers share it without locking.
type DB struct {
	rows       []entity.StandardRequirement
	byStandard map[string][]entity.StandardRequirement
	ids        []string
}

// LoadDefault loads the embedded standards database.
func LoadDefault() (*DB, error) {
	return load(embeddedStandards)
}

// LoadFile loads a standards database from an external JSON file,
// validating it against the requirements schema first.
func LoadFile(path string) (*DB, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read standards file: %w", err)
	}
	return load(raw)
}

func load(raw []byte) (*DB, error) {
	schema, err := jsonschema.CompileString("standards.schema.json", requirementsSchema())
	if err != nil {
		return nil, fmt.Errorf("compile standards schema: %w", err)
	}

	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("parse standards json: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("validate standards json: %w", err)
	}

	var doc struct {
		Requirements []entity.StandardRequirement `json:"requirements"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode standards json: %w", err)
	}

	db := &DB{
		rows:       doc.Requirements,
		byStandard: make(map[string][]entity.StandardRequirement),
	}
	for _, r := range doc.Requirements {
		if !r.Bounded() {
			return nil, fmt.Errorf("requirement %s/%s/%s has no bounds", r.StandardID, r.RoomType, r.Kind)
		}
		db.byStandard[r.StandardID] = append(db.byStandard[r.StandardID], r)
	}
	for id := range db.byStandard {
		db.ids = append(db.ids, id)
	}
	sort.Strings(db.ids)
	return db, nil
}

// StandardIDs returns every loaded standard, sorted.
func (db *DB) StandardIDs() []string {
	out := make([]string, len(db.ids))
	copy(out, db.ids)
	return out
}

// Requirements returns every loaded row.
func (db *DB) Requirements() []entity.StandardRequirement {
	out := make([]entity.StandardRequirement, len(db.rows))
	copy(out, db.rows)
	return out
}

// RequirementsFor returns the rows of one standard matching a room type.
func (db *DB) RequirementsFor(standardID string, rt constants.RoomType) []entity.StandardRequirement {
	var out []entity.StandardRequirement
	for _, r := range db.byStandard[standardID] {
		if r.RoomType == rt {
			out = append(out, r)
		}
	}
	return out
}

// Covers reports whether a standard has any rows for a room type.
func (db *DB) Covers(standardID string, rt constants.RoomType) bool {
	return len(db.RequirementsFor(standardID, rt)) > 0
}
