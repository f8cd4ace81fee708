package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/router"
)

func TestHTTP_EndToEnd_UBSRecordFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Admin cadastra a UBS
	unitID := createEntity(t, ts.URL, "POST", "/api/ubs", "admin-1", "admin", map[string]any{
		"name":     "UBS Central",
		"address":  "Av. Principal, 100",
		"city":     "Natal",
		"state":    "RN",
		"district": "Centro",
	})

	// 2) Enfermeira não pode cadastrar UBS; anônimo também não
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/ubs", "nurse-1", "nurse", map[string]any{"name": "UBS Pirata"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 nurse creating ubs, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/ubs", "", "", map[string]any{"name": "UBS Pirata"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 anonymous creating ubs, got %d", st)
		}
	}

	// 3) Admin lota uma médica na unidade
	employeeID := createEntity(t, ts.URL, "POST", "/api/employees", "admin-1", "admin", map[string]any{
		"name":    "Dra. Helena",
		"role":    "doctor",
		"license": "CRM/RN 1234",
		"ubsId":   unitID,
	})

	// 4) Médica cadastra a doença; enfermeira não pode
	diseaseID := createEntity(t, ts.URL, "POST", "/api/diseases", "doc-1", "doctor", map[string]any{
		"name":  "Sífilis Congênita",
		"icd10": "A50",
	})
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/diseases", "nurse-1", "nurse", map[string]any{"name": "Dengue"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 nurse creating disease, got %d", st)
		}
	}

	// 5) Enfermeira abre o prontuário com o documento completo
	recordID := createEntity(t, ts.URL, "POST", "/api/medical-records", "nurse-1", "nurse", map[string]any{
		"diseaseId":  diseaseID,
		"ubsId":      unitID,
		"employeeId": employeeID,
		"data":       fullPayload(t),
	})

	// Nome e nascimento do paciente espelhados na raiz
	{
		st, body := doReq(t, ts.URL, "GET", "/api/medical-records/"+recordID, "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get record, got %d body=%s", st, string(body))
		}
		var resp struct {
			PatientName      string `json:"patientName"`
			PatientBirthDate string `json:"patientBirthDate"`
			Status           string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.PatientName != "João da Silva" || resp.PatientBirthDate != "2024-01-15" {
			t.Fatalf("patient fields not mirrored: %+v", resp)
		}
		if resp.Status != "active" {
			t.Fatalf("expected default status active, got %q", resp.Status)
		}
	}

	// 6) Documento com folha faltando => 400 apontando o caminho
	{
		data := fullPayload(t)
		delete(data["monitoramento"].(map[string]any), "nome")
		st, body := doReq(t, ts.URL, "POST", "/api/medical-records", "nurse-1", "nurse", map[string]any{"data": data})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid payload, got %d body=%s", st, string(body))
		}
		var resp struct {
			Issues []struct {
				Path string `json:"path"`
			} `json:"issues"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Issues) != 1 || resp.Issues[0].Path != "monitoramento.nome" {
			t.Fatalf("expected issue at monitoramento.nome, got %s", string(body))
		}
	}

	// 7) Referência para doença inexistente => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/medical-records", "nurse-1", "nurse", map[string]any{
			"diseaseId": "nao-existe",
			"data":      fullPayload(t),
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 invalid ref, got %d", st)
		}
	}

	// 8) Estatísticas do painel
	{
		st, body := doReq(t, ts.URL, "GET", "/api/statistics", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 statistics, got %d", st)
		}
		var resp struct {
			UnitCount         int `json:"unitCount"`
			ActiveDoctorCount int `json:"activeDoctorCount"`
			TotalRecordCount  int `json:"totalRecordCount"`
			ActiveRecordCount int `json:"activeRecordCount"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.UnitCount != 1 || resp.ActiveDoctorCount != 1 {
			t.Fatalf("unexpected statistics: %+v", resp)
		}
		if resp.TotalRecordCount != 1 || resp.ActiveRecordCount != 1 {
			t.Fatalf("unexpected record counts: %+v", resp)
		}
	}

	// 9) Merge-patch: só o status muda, refs continuam
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/medical-records/"+recordID, "nurse-1", "nurse", map[string]any{
			"status": "follow-up",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string  `json:"status"`
			UBSID  *string `json:"ubsId"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "follow-up" {
			t.Fatalf("status not patched: %s", string(body))
		}
		if resp.UBSID == nil || *resp.UBSID != unitID {
			t.Fatalf("ubs ref lost on patch: %s", string(body))
		}
	}

	// 10) Admin apaga a UBS; o prontuário sobrevive com a ref pendurada
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/ubs/"+unitID, "admin-1", "admin", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete unit, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/api/medical-records/"+recordID, "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 record after unit delete, got %d", st)
		}
		var resp struct {
			UBSID *string `json:"ubsId"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.UBSID == nil || *resp.UBSID != unitID {
			t.Fatalf("record should keep dangling ubs ref: %s", string(body))
		}
		// A médica lotada na unidade foi junto (cascata)
		st, _ = doReq(t, ts.URL, "GET", "/api/employees/"+employeeID, "", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 employee after unit delete, got %d", st)
		}
	}

	// 11) Só admin deleta prontuário
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/medical-records/"+recordID, "nurse-1", "nurse", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 nurse deleting record, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/api/medical-records/"+recordID, "admin-1", "admin", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 admin deleting record, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/medical-records/"+recordID, "", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_LoginDisabledWithoutIssuer(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/api/auth/login", "", "", map[string]any{
		"username": "maria",
		"password": "segredo",
	})
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 login without issuer, got %d", st)
	}
}

// fullPayload devolve o documento clínico completo como map editável.
func fullPayload(t *testing.T) map[string]any {
	t.Helper()

	p := records.Payload{
		Monitoramento: records.Monitoramento{
			NumeroNotificacao: "NOT-2024-001",
			NumeroSUS:         "898001160660000",
			Nome:              "João da Silva",
			DataNascimento:    "2024-01-15",
			Origem:            "Maternidade",
		},
		HistoriaMaterna: records.HistoriaMaterna{
			Nome:               "Maria da Silva",
			Idade:              27,
			DuracaoPreNatal:    "7 meses",
			NumeroConsultas:    6,
			Tratamento:         "Inadequado",
			TratamentoParceiro: "Não",
		},
		HistoricoHospitalar: records.HistoricoHospitalar{
			TipoParto:       "Cesárea",
			DadosNascimento: "3.100g, 49cm",
			VDRLMaterno:     "1:8",
			VDRLRecemNato:   "1:2",
			TratamentoRN:    "Penicilina cristalina 10 dias",
			ExamesImagem:    "Sem alterações",
			Liquor:          "Normal",
		},
		TriagemNeonatal: records.TriagemNeonatal{
			TesteOlhinhoOD:   "Normal",
			TesteOlhinhoOE:   "Normal",
			OrelhinhaEOAOD:   "Normal",
			OrelhinhaEOAOE:   "Normal",
			OrelhinhaPEATEOD: "Não realizado",
			OrelhinhaPEATEOE: "Não realizado",
			OximetriaMSD:     "98%",
			OximetriaMID:     "97%",
			TesteLinguinha:   "Normal",
		},
		Acompanhamento: records.Acompanhamento{
			DataPrimeiraConsulta: "2024-02-01",
			VDRLPrimeiraConsulta: "1:2",
			Retorno1Mes:          records.Retorno{Data: "2024-02-10", Resultado: "Não reagente", Tratamento: "Nenhum"},
			Retorno3Meses:        records.Retorno{Data: "2024-04-12", Resultado: "Não reagente", Tratamento: "Nenhum"},
			Retorno6Meses:        records.Retorno{Data: "2024-07-10", Resultado: "Não reagente", Tratamento: "Nenhum"},
			Retorno18Meses:       records.Retorno{Data: "2025-07-15", Resultado: "Não reagente", Tratamento: "Nenhum"},
			AlteracaoLiquor:      "Não",
			Alta:                 "Não",
		},
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return doc
}

func createEntity(t *testing.T, baseURL, method, path, userID, role string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, method, path, userID, role, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 %s %s, got %d body=%s", method, path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("%s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
		req.Header.Set("X-Debug-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
