package records

import (
	"sort"
	"testing"
)

func TestPayload_GetSet(t *testing.T) {
	var p Payload

	if err := p.Set(PathNome, "Ana Souza"); err != nil {
		t.Fatalf("set nome: %v", err)
	}
	if err := p.Set(PathMaeIdade, 31); err != nil {
		t.Fatalf("set idade: %v", err)
	}
	if err := p.Set(PathNeurologia, true); err != nil {
		t.Fatalf("set neurologia: %v", err)
	}
	if err := p.Set(PathRetorno18Data, "2025-09-01"); err != nil {
		t.Fatalf("set retorno 18 meses: %v", err)
	}

	if v, _ := p.Get(PathNome); v != "Ana Souza" {
		t.Errorf("nome: got %v", v)
	}
	if v, _ := p.Get(PathMaeIdade); v != 31 {
		t.Errorf("idade: got %v", v)
	}
	if v, _ := p.Get(PathNeurologia); v != true {
		t.Errorf("neurologia: got %v", v)
	}
	if p.Acompanhamento.Retorno18Meses.Data != "2025-09-01" {
		t.Errorf("retorno 18 meses não chegou no struct: %+v", p.Acompanhamento.Retorno18Meses)
	}
}

func TestPayload_SetRejectsWrongType(t *testing.T) {
	var p Payload

	if err := p.Set(PathMaeIdade, "31"); err == nil {
		t.Error("expected error setting string on int leaf")
	}
	if err := p.Set(PathNome, 42); err == nil {
		t.Error("expected error setting int on string leaf")
	}
	if err := p.Set(PathAudiologia, "true"); err == nil {
		t.Error("expected error setting string on bool leaf")
	}
}

func TestPayload_UnknownPath(t *testing.T) {
	var p Payload

	if _, ok := p.Get(FieldPath("monitoramento.inexistente")); ok {
		t.Error("Get should report unknown path")
	}
	if err := p.Set(FieldPath("monitoramento.inexistente"), "x"); err == nil {
		t.Error("Set should reject unknown path")
	}
}

func TestAllPaths_StableAndComplete(t *testing.T) {
	paths := AllPaths()

	if !sort.SliceIsSorted(paths, func(i, j int) bool { return paths[i] < paths[j] }) {
		t.Error("AllPaths must come sorted")
	}

	// Toda folha listada precisa ser legível num payload zerado.
	var p Payload
	for _, path := range paths {
		if _, ok := p.Get(path); !ok {
			t.Errorf("path %q has no accessor", path)
		}
	}
}

func TestDatePaths(t *testing.T) {
	got := DatePaths()

	want := map[FieldPath]bool{
		PathDataNascimento:       true,
		PathDataPrimeiraConsulta: true,
		PathRetorno1Data:         true,
		PathRetorno3Data:         true,
		PathRetorno6Data:         true,
		PathRetorno18Data:        true,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d date paths, got %d: %v", len(want), len(got), got)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected date path %q", p)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-01-15"); err != nil {
		t.Errorf("YYYY-MM-DD: %v", err)
	}
	if _, err := ParseDate("2024-01-15T10:30:00Z"); err != nil {
		t.Errorf("RFC3339: %v", err)
	}
	if _, err := ParseDate("15/01/2024"); err == nil {
		t.Error("expected error for BR-formatted date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}
