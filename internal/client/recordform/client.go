package recordform

import (
	"context"
	"net/http"
	"time"

	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/platform/httpclient"
)

// Record é a forma canônica devolvida pela API de prontuários.
type Record struct {
	ID               string          `json:"id"`
	PatientName      string          `json:"patientName"`
	PatientBirthDate string          `json:"patientBirthDate"`
	DiseaseID        *string         `json:"diseaseId"`
	UBSID            *string         `json:"ubsId"`
	EmployeeID       *string         `json:"employeeId"`
	Status           string          `json:"status"`
	Data             records.Payload `json:"data"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type recordBody struct {
	DiseaseID  *string         `json:"diseaseId,omitempty"`
	UBSID      *string         `json:"ubsId,omitempty"`
	EmployeeID *string         `json:"employeeId,omitempty"`
	Status     string          `json:"status,omitempty"`
	Data       records.Payload `json:"data"`
}

// Client é a fronteira HTTP do form: só os três verbos que a ficha usa.
type Client interface {
	GetRecord(ctx context.Context, id string) (Record, error)
	CreateRecord(ctx context.Context, body recordBody) (Record, error)
	UpdateRecord(ctx context.Context, id string, body recordBody) (Record, error)
}

// APIClient implementa Client sobre o httpclient da plataforma.
type APIClient struct {
	http    *httpclient.Client
	headers map[string]string // auth (Bearer ou X-Debug-*)
}

func NewAPIClient(baseURL string, headers map[string]string) (*APIClient, error) {
	c, err := httpclient.NewWithBaseURL(baseURL, httpclient.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &APIClient{http: c, headers: headers}, nil
}

func (c *APIClient) GetRecord(ctx context.Context, id string) (Record, error) {
	var out Record
	err := c.http.DoJSON(ctx, http.MethodGet, "/api/medical-records/"+id, c.headers, nil, &out)
	return out, err
}

func (c *APIClient) CreateRecord(ctx context.Context, body recordBody) (Record, error) {
	var out Record
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/medical-records", c.headers, body, &out)
	return out, err
}

func (c *APIClient) UpdateRecord(ctx context.Context, id string, body recordBody) (Record, error) {
	var out Record
	err := c.http.DoJSON(ctx, http.MethodPut, "/api/medical-records/"+id, c.headers, body, &out)
	return out, err
}
