package store

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// CUE schemas for the persisted documents. Validation happens on every load,
// before unmarshalling: documents are user-visible files and may have been
// edited by hand.
//
// The structs are deliberately open so that extra fields in a document are
// tolerated rather than rejected.

const eventsSchema = `
eventos: [...{
	nome:      string
	data:      string
	descricao: string
	vagas:     int & >0
	inscritos: [...{
		id:   string
		nome: string
		...
	}]
	status?: string
	...
}]
inscricoes: [string]: [...{
	id:       int & >0
	id_aluno: string
	nome:     string
	email:    string
	...
}]
`

const profilesSchema = `
[string]: {
	nome:  string
	email: string
	curso?: string
	eventos_inscritos: [...string]
	...
}
`

// validateDocument checks raw JSON bytes against a schema. JSON is a subset
// of CUE, so the document compiles directly and is unified with the schema.
func validateDocument(schema string, data []byte) error {
	ctx := cuecontext.New()

	sv := ctx.CompileString(schema)
	if err := sv.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	dv := ctx.CompileBytes(data)
	if err := dv.Err(); err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}

	if err := sv.Unify(dv).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}
