package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/researchhub/internal/model"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce sync.Once
	cueCtx     *cue.Context
	docSchema  cue.Value
	schemaErr  error
)

// loadSchema compiles the embedded schema once per process.
func loadSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		cueCtx = cuecontext.New()
		v := cueCtx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile import schema: %w", err)
			return
		}
		docSchema = v.LookupPath(cue.ParsePath("#Document"))
		schemaErr = docSchema.Err()
	})
	return cueCtx, docSchema, schemaErr
}

// requiredCollections must be present in every import payload.
var requiredCollections = []string{"projects", "tasks", "papers"}

// Import parses and validates an export payload.
//
// Enum values and entity createdAt values are kept verbatim. The returned
// document has non-nil collections; Meta.CreatedAt is empty when the payload
// did not carry one.
func Import(data []byte) (model.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return model.Document{}, &model.ImportFormatError{Reason: "payload is not valid JSON"}
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.Document{}, &model.ImportFormatError{Reason: "payload must be a JSON object"}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return model.Document{}, &model.ImportFormatError{Reason: "payload must be a JSON object", Err: err}
	}
	for _, key := range requiredCollections {
		if _, ok := top[key]; !ok {
			return model.Document{}, &model.ImportFormatError{Reason: "missing " + key}
		}
	}

	if err := validateSchema(trimmed); err != nil {
		return model.Document{}, err
	}

	var doc model.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return model.Document{}, &model.ImportFormatError{Reason: "decode", Err: err}
	}
	doc.Normalize()

	if err := checkIntegrity(&doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func validateSchema(data []byte) error {
	ctx, schema, err := loadSchema()
	if err != nil {
		return &model.ImportFormatError{Reason: "schema unavailable", Err: err}
	}

	v := ctx.CompileBytes(data, cue.Filename("import.json"))
	if err := v.Err(); err != nil {
		return &model.ImportFormatError{Reason: "parse", Err: err}
	}
	if err := schema.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return &model.ImportFormatError{Reason: "schema", Err: err}
	}
	return nil
}

// checkIntegrity rejects duplicate ids across all collections and tasks
// pointing at a project the payload does not contain.
func checkIntegrity(doc *model.Document) error {
	seen := make(map[string]string)
	claim := func(kind, id string) error {
		if prev, dup := seen[id]; dup {
			return &model.ImportFormatError{Reason: fmt.Sprintf("duplicate id %q (%s and %s)", id, prev, kind)}
		}
		seen[id] = kind
		return nil
	}

	projects := make(map[string]bool, len(doc.Projects))
	for _, p := range doc.Projects {
		if err := claim(model.KindProject, p.ID); err != nil {
			return err
		}
		projects[p.ID] = true
	}
	for _, t := range doc.Tasks {
		if err := claim(model.KindTask, t.ID); err != nil {
			return err
		}
		if !projects[t.ProjectID] {
			return &model.ImportFormatError{
				Reason: "orphan task",
				Err:    &model.ReferentialError{TaskID: t.ID, ProjectID: t.ProjectID},
			}
		}
	}
	for _, p := range doc.Papers {
		if err := claim(model.KindPaper, p.ID); err != nil {
			return err
		}
	}
	return nil
}
