package recordform

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/router"
)

func newTestAPI(t *testing.T, role string) (*APIClient, func()) {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(router.Options{}))

	headers := map[string]string{}
	if role != "" {
		headers["X-Debug-User-ID"] = "user-1"
		headers["X-Debug-Role"] = role
	}
	api, err := NewAPIClient(ts.URL, headers)
	if err != nil {
		ts.Close()
		t.Fatalf("new api client: %v", err)
	}
	return api, ts.Close
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
}

func TestForm_CreateFlow(t *testing.T) {
	api, closeSrv := newTestAPI(t, "nurse")
	defer closeSrv()

	var listInvalidated, closed bool
	var saved Record

	f := NewCreate(api, Hooks{
		InvalidateList: func() { listInvalidated = true },
		RefreshRecord:  func(r Record) { saved = r },
		Close:          func() { closed = true },
	})
	f.now = fixedNow

	if f.State() != StateReady {
		t.Fatalf("create form must start Ready, got %v", f.State())
	}

	// Preenchimento espelha os campos do paciente na hora.
	if err := f.SetField(records.PathNome, "Ana Clara"); err != nil {
		t.Fatalf("set nome: %v", err)
	}
	if err := f.SetField(records.PathDataNascimento, "2024-04-01"); err != nil {
		t.Fatalf("set nascimento: %v", err)
	}
	if f.PatientName() != "Ana Clara" || f.PatientBirthDate() != "2024-04-01" {
		t.Fatalf("patient fields not synced: %q %q", f.PatientName(), f.PatientBirthDate())
	}

	if err := f.SetField(records.PathMaeIdade, 30); err != nil {
		t.Fatalf("set idade: %v", err)
	}
	// Data de retorno deixada quebrada de propósito: o submit conserta.
	if err := f.SetField(records.PathRetorno1Data, "quando der"); err != nil {
		t.Fatalf("set retorno: %v", err)
	}

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if f.State() != StateDone {
		t.Fatalf("expected Done after submit, got %v", f.State())
	}
	if !listInvalidated || !closed {
		t.Fatalf("hooks not fired: list=%v closed=%v", listInvalidated, closed)
	}
	if saved.ID == "" {
		t.Fatal("RefreshRecord hook got empty record")
	}
	if saved.PatientName != "Ana Clara" {
		t.Errorf("patient name not mirrored server-side: %q", saved.PatientName)
	}
	if saved.Data.Acompanhamento.Retorno1Mes.Data != "2024-05-20" {
		t.Errorf("broken date not normalized to today: %q", saved.Data.Acompanhamento.Retorno1Mes.Data)
	}
	if saved.Data.Monitoramento.DataNascimento != "2024-04-01" {
		t.Errorf("valid date must stay as typed: %q", saved.Data.Monitoramento.DataNascimento)
	}
}

func TestForm_EditFlow(t *testing.T) {
	api, closeSrv := newTestAPI(t, "doctor")
	defer closeSrv()

	// Semeia via um form de criação.
	seed := NewCreate(api, Hooks{})
	seed.now = fixedNow
	if err := seed.SetField(records.PathNome, "Pedro Lima"); err != nil {
		t.Fatalf("seed nome: %v", err)
	}
	var recordID string
	seed.hooks.RefreshRecord = func(r Record) { recordID = r.ID }
	if err := seed.Submit(context.Background()); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	f := NewEdit(api, recordID, Hooks{})
	f.now = fixedNow

	if f.State() != StateLoading {
		t.Fatalf("edit form must start Loading, got %v", f.State())
	}
	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.State() != StateReady {
		t.Fatalf("expected Ready after load, got %v", f.State())
	}
	if v, _ := f.Field(records.PathNome); v != "Pedro Lima" {
		t.Fatalf("loaded nome: %v", v)
	}

	// Renomeia e confirma o re-espelhamento no servidor.
	if err := f.SetField(records.PathNome, "Pedro Henrique Lima"); err != nil {
		t.Fatalf("set nome: %v", err)
	}
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := api.GetRecord(context.Background(), recordID)
	if err != nil {
		t.Fatalf("get after edit: %v", err)
	}
	if got.PatientName != "Pedro Henrique Lima" {
		t.Errorf("patient name not updated: %q", got.PatientName)
	}
}

func TestForm_ViewModeIsReadOnly(t *testing.T) {
	api, closeSrv := newTestAPI(t, "nurse")
	defer closeSrv()

	seed := NewCreate(api, Hooks{})
	var recordID string
	seed.hooks.RefreshRecord = func(r Record) { recordID = r.ID }
	if err := seed.Submit(context.Background()); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	f := NewView(api, recordID, Hooks{})
	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := f.SetField(records.PathNome, "x"); err != ErrReadOnly {
		t.Errorf("SetField in view mode: got %v", err)
	}
	if err := f.SetStatus("completed"); err != ErrReadOnly {
		t.Errorf("SetStatus in view mode: got %v", err)
	}
	if err := f.Submit(context.Background()); err != ErrReadOnly {
		t.Errorf("Submit in view mode: got %v", err)
	}

	// Leitura continua liberada.
	if _, ok := f.Field(records.PathNome); !ok {
		t.Error("Field must work in view mode")
	}
}

func TestForm_SubmitFailureKeepsFormReady(t *testing.T) {
	api, closeSrv := newTestAPI(t, "nurse")
	defer closeSrv()

	f := NewCreate(api, Hooks{})
	if err := f.SetStatus("arquivado"); err != nil {
		t.Fatalf("set status: %v", err)
	}

	err := f.Submit(context.Background())
	if err == nil {
		t.Fatal("expected submit error for bad status")
	}
	if f.State() != StateReady {
		t.Fatalf("form must return to Ready on failure, got %v", f.State())
	}
	// O texto do backend chega como veio.
	if !strings.Contains(f.LastError(), "invalid input") {
		t.Errorf("backend error not surfaced: %q", f.LastError())
	}

	// Corrigindo o status o mesmo form consegue submeter.
	if err := f.SetStatus("active"); err != nil {
		t.Fatalf("fix status: %v", err)
	}
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if f.State() != StateDone {
		t.Fatalf("expected Done after resubmit, got %v", f.State())
	}
}

func TestForm_SubmitWithoutPermissionSurfacesError(t *testing.T) {
	api, closeSrv := newTestAPI(t, "") // anônimo
	defer closeSrv()

	f := NewCreate(api, Hooks{})
	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error submitting without auth")
	}
	if f.State() != StateReady {
		t.Fatalf("form must stay Ready, got %v", f.State())
	}
	if !strings.Contains(f.LastError(), "unauthorized") {
		t.Errorf("expected backend 401 text, got %q", f.LastError())
	}
}

func TestForm_SectionNavigationNeverValidates(t *testing.T) {
	api, closeSrv := newTestAPI(t, "nurse")
	defer closeSrv()

	f := NewCreate(api, Hooks{})

	if f.Section() != SectionMonitoramento {
		t.Fatalf("must start at first section, got %v", f.Section())
	}

	// Avança até o fim com o form inteiro vazio; nada reclama.
	for i := 0; i < 10; i++ {
		f.NextSection()
	}
	if f.Section() != SectionAcompanhamento {
		t.Fatalf("NextSection must clamp at last section, got %v", f.Section())
	}

	for i := 0; i < 10; i++ {
		f.PrevSection()
	}
	if f.Section() != SectionMonitoramento {
		t.Fatalf("PrevSection must clamp at first section, got %v", f.Section())
	}

	if err := f.GoToSection(SectionTriagemNeonatal); err != nil {
		t.Fatalf("go to section: %v", err)
	}
	if err := f.GoToSection(Section(99)); err == nil {
		t.Error("expected error for out-of-range section")
	}

	if SectionHistoriaMaterna.Title() != "História Materna" {
		t.Errorf("section title: %q", SectionHistoriaMaterna.Title())
	}
}
