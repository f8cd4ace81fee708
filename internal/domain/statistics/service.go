// Package statistics computa os contadores do painel sempre ao vivo,
// sem cache: os números saem direto dos repositórios a cada chamada.
package statistics

import "context"

type Summary struct {
	UnitCount         int `json:"unitCount"`
	ActiveDoctorCount int `json:"activeDoctorCount"`
	TotalRecordCount  int `json:"totalRecordCount"`
	ActiveRecordCount int `json:"activeRecordCount"`
}

// Interfaces estreitas satisfeitas pelos repositórios de cada domínio.
type UnitCounter interface {
	Count(ctx context.Context) (int, error)
}

type DoctorCounter interface {
	CountActiveDoctors(ctx context.Context) (int, error)
}

type RecordCounter interface {
	Count(ctx context.Context) (total int, active int, err error)
}

type Service struct {
	units   UnitCounter
	doctors DoctorCounter
	records RecordCounter
}

func NewService(units UnitCounter, doctors DoctorCounter, records RecordCounter) *Service {
	return &Service{
		units:   units,
		doctors: doctors,
		records: records,
	}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary

	n, err := s.units.Count(ctx)
	if err != nil {
		return Summary{}, err
	}
	out.UnitCount = n

	n, err = s.doctors.CountActiveDoctors(ctx)
	if err != nil {
		return Summary{}, err
	}
	out.ActiveDoctorCount = n

	total, active, err := s.records.Count(ctx)
	if err != nil {
		return Summary{}, err
	}
	out.TotalRecordCount = total
	out.ActiveRecordCount = active

	return out, nil
}
