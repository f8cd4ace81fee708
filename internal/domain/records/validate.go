package records

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Issue aponta uma violação estrutural em uma folha do payload.
type Issue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ValidationError agrega todas as violações encontradas em um candidato.
// A validação nunca para na primeira: o chamador recebe a lista completa.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid payload"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", is.Path, is.Reason))
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

// ValidatePayload valida um candidato contra o formato do payload clínico:
// todas as folhas presentes, tipos conformes e folhas de data parseáveis.
// A checagem é puramente estrutural por campo; nenhuma regra de negócio
// cruzada (um "Não realizado" na triagem não bloqueia nada). Valores de
// folha passam intactos para o Payload retornado.
func ValidatePayload(raw json.RawMessage) (Payload, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Payload{}, &ValidationError{Issues: []Issue{{Path: ".", Reason: "not a JSON object"}}}
	}

	var issues []Issue
	for _, path := range AllPaths() {
		def := leafDefs[path]
		v, found := lookup(doc, string(path))
		if !found {
			issues = append(issues, Issue{Path: string(path), Reason: "required field missing"})
			continue
		}
		switch def.kind {
		case kindString:
			if _, ok := v.(string); !ok {
				issues = append(issues, Issue{Path: string(path), Reason: "must be a string"})
			}
		case kindInt:
			n, ok := v.(float64)
			if !ok || n != math.Trunc(n) {
				issues = append(issues, Issue{Path: string(path), Reason: "must be an integer"})
			}
		case kindBool:
			if _, ok := v.(bool); !ok {
				issues = append(issues, Issue{Path: string(path), Reason: "must be a boolean"})
			}
		case kindDate:
			s, ok := v.(string)
			if !ok {
				issues = append(issues, Issue{Path: string(path), Reason: "must be a date string"})
				continue
			}
			if _, err := ParseDate(s); err != nil {
				issues = append(issues, Issue{Path: string(path), Reason: "must be a valid date (YYYY-MM-DD)"})
			}
		}
	}

	if len(issues) > 0 {
		return Payload{}, &ValidationError{Issues: issues}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, &ValidationError{Issues: []Issue{{Path: ".", Reason: err.Error()}}}
	}
	return p, nil
}

// lookup desce pelo documento seguindo o caminho pontuado.
func lookup(doc map[string]any, path string) (any, bool) {
	segs := strings.Split(path, ".")
	cur := any(doc)
	for _, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
