package recordform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/platform/httpclient"
)

// Mode define o comportamento da ficha.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
	ModeView
)

// State é o ciclo de vida da sessão da ficha.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Section é uma das cinco etapas da ficha de sífilis congênita.
type Section int

const (
	SectionMonitoramento Section = iota
	SectionHistoriaMaterna
	SectionHistoricoHospitalar
	SectionTriagemNeonatal
	SectionAcompanhamento

	sectionCount = 5
)

func (s Section) Title() string {
	switch s {
	case SectionMonitoramento:
		return "Monitoramento"
	case SectionHistoriaMaterna:
		return "História Materna"
	case SectionHistoricoHospitalar:
		return "Histórico Hospitalar"
	case SectionTriagemNeonatal:
		return "Triagem Neonatal"
	case SectionAcompanhamento:
		return "Acompanhamento"
	default:
		return ""
	}
}

var (
	ErrReadOnly   = errors.New("recordform: ficha em modo de visualização")
	ErrNotReady   = errors.New("recordform: ficha não está pronta")
	ErrNoRecordID = errors.New("recordform: edição exige um id de prontuário")
)

// Hooks são os callbacks que a ficha dispara ao concluir com sucesso.
// Todos são opcionais.
type Hooks struct {
	// InvalidateList avisa que a listagem de prontuários ficou stale.
	InvalidateList func()
	// RefreshRecord entrega o prontuário salvo para atualizar caches.
	RefreshRecord func(Record)
	// Close fecha a ficha.
	Close func()
}

// Form é a sessão de uma ficha de prontuário: carrega (ou inicia) o
// documento, navega pelas seções sem validar nada, e só no submit
// normaliza datas e entrega o documento inteiro ao backend. Erros de
// validação voltam como o backend os escreveu.
type Form struct {
	api   Client
	mode  Mode
	hooks Hooks

	state    State
	section  Section
	recordID string

	payload          records.Payload
	status           string
	diseaseID        *string
	ubsID            *string
	employeeID       *string
	patientName      string
	patientBirthDate string

	lastError string

	now func() time.Time
}

// NewCreate abre uma ficha em branco pronta para preenchimento.
func NewCreate(api Client, hooks Hooks) *Form {
	return &Form{
		api:    api,
		mode:   ModeCreate,
		hooks:  hooks,
		state:  StateReady,
		status: string(records.StatusActive),
		now:    time.Now,
	}
}

// NewEdit abre uma ficha em modo de edição; Load precisa ser chamado
// antes de qualquer outra operação.
func NewEdit(api Client, recordID string, hooks Hooks) *Form {
	return &Form{
		api:      api,
		mode:     ModeEdit,
		hooks:    hooks,
		state:    StateLoading,
		recordID: recordID,
		now:      time.Now,
	}
}

// NewView abre uma ficha somente leitura.
func NewView(api Client, recordID string, hooks Hooks) *Form {
	f := NewEdit(api, recordID, hooks)
	f.mode = ModeView
	return f
}

// Load busca o prontuário e popula a ficha. Só faz sentido em edição e
// visualização; em criação é um no-op.
func (f *Form) Load(ctx context.Context) error {
	if f.mode == ModeCreate {
		return nil
	}
	if f.recordID == "" {
		return ErrNoRecordID
	}

	rec, err := f.api.GetRecord(ctx, f.recordID)
	if err != nil {
		f.lastError = errorText(err)
		return err
	}

	f.payload = rec.Data
	f.status = rec.Status
	f.diseaseID = rec.DiseaseID
	f.ubsID = rec.UBSID
	f.employeeID = rec.EmployeeID
	f.patientName = rec.PatientName
	f.patientBirthDate = rec.PatientBirthDate
	f.state = StateReady
	f.lastError = ""
	return nil
}

func (f *Form) Mode() Mode        { return f.mode }
func (f *Form) State() State      { return f.state }
func (f *Form) Section() Section  { return f.section }
func (f *Form) LastError() string { return f.lastError }

func (f *Form) PatientName() string      { return f.patientName }
func (f *Form) PatientBirthDate() string { return f.patientBirthDate }

// Navegação entre seções nunca valida: o preenchimento é livre e
// qualquer pendência só aparece no submit.
func (f *Form) NextSection() {
	if f.section < sectionCount-1 {
		f.section++
	}
}

func (f *Form) PrevSection() {
	if f.section > 0 {
		f.section--
	}
}

func (f *Form) GoToSection(s Section) error {
	if s < 0 || s >= sectionCount {
		return fmt.Errorf("recordform: seção inválida %d", s)
	}
	f.section = s
	return nil
}

// Field lê o valor de uma folha do documento.
func (f *Form) Field(path records.FieldPath) (any, bool) {
	return f.payload.Get(path)
}

// SetField escreve uma folha do documento. Nome e data de nascimento do
// monitoramento são espelhados nos campos de topo do prontuário.
func (f *Form) SetField(path records.FieldPath, value any) error {
	if f.mode == ModeView {
		return ErrReadOnly
	}
	if f.state != StateReady {
		return ErrNotReady
	}
	if err := f.payload.Set(path, value); err != nil {
		return err
	}

	switch path {
	case records.PathNome:
		f.patientName = f.payload.Monitoramento.Nome
	case records.PathDataNascimento:
		f.patientBirthDate = f.payload.Monitoramento.DataNascimento
	}
	return nil
}

// SetStatus troca o status do prontuário sem validar aqui; o backend é
// quem decide se o valor é aceito.
func (f *Form) SetStatus(status string) error {
	if f.mode == ModeView {
		return ErrReadOnly
	}
	f.status = status
	return nil
}

// SetRefs aponta o prontuário para doença, UBS e profissional. nil
// limpa a referência.
func (f *Form) SetRefs(diseaseID, ubsID, employeeID *string) error {
	if f.mode == ModeView {
		return ErrReadOnly
	}
	f.diseaseID = diseaseID
	f.ubsID = ubsID
	f.employeeID = employeeID
	return nil
}

// Submit normaliza as datas, envia o documento inteiro e, em caso de
// sucesso, dispara os hooks e fecha a ficha. Em caso de falha a ficha
// volta a Ready com o texto do erro do backend intacto.
func (f *Form) Submit(ctx context.Context) error {
	if f.mode == ModeView {
		return ErrReadOnly
	}
	if f.state != StateReady {
		return ErrNotReady
	}
	if f.mode == ModeEdit && f.recordID == "" {
		return ErrNoRecordID
	}

	f.state = StateSubmitting
	f.normalizeDates()

	body := recordBody{
		DiseaseID:  f.diseaseID,
		UBSID:      f.ubsID,
		EmployeeID: f.employeeID,
		Status:     f.status,
		Data:       f.payload,
	}

	var (
		rec Record
		err error
	)
	if f.mode == ModeCreate {
		rec, err = f.api.CreateRecord(ctx, body)
	} else {
		rec, err = f.api.UpdateRecord(ctx, f.recordID, body)
	}
	if err != nil {
		f.state = StateReady
		f.lastError = errorText(err)
		return err
	}

	f.state = StateDone
	f.lastError = ""
	if f.hooks.InvalidateList != nil {
		f.hooks.InvalidateList()
	}
	if f.hooks.RefreshRecord != nil {
		f.hooks.RefreshRecord(rec)
	}
	if f.hooks.Close != nil {
		f.hooks.Close()
	}
	return nil
}

// normalizeDates garante que toda folha de data saia parseável: datas
// válidas ficam como estão, vazias ou quebradas viram a data de hoje.
func (f *Form) normalizeDates() {
	today := f.now().Format(records.DateLayout)
	for _, path := range records.DatePaths() {
		v, ok := f.payload.Get(path)
		if !ok {
			continue
		}
		s, _ := v.(string)
		if _, err := records.ParseDate(s); err != nil {
			_ = f.payload.Set(path, today)
		}
	}
	f.patientBirthDate = f.payload.Monitoramento.DataNascimento
}

// errorText extrai o corpo da resposta quando o erro veio do backend,
// para que mensagens de validação cheguem à ficha sem reescrita.
func errorText(err error) string {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.Body != "" {
		return httpErr.Body
	}
	return err.Error()
}
