package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ubs-monitoring/internal/domain/diseases"
	"ubs-monitoring/internal/domain/employees"
	"ubs-monitoring/internal/domain/records"
	"ubs-monitoring/internal/domain/units"
	"ubs-monitoring/internal/domain/users"
	"ubs-monitoring/internal/platform/sentinel"
)

// newStore monta o conjunto de repos amarrados como no router.
func newStore() (*UnitsRepo, *EmployeesRepo, *DiseasesRepo, *RecordsRepo, *UsersRepo) {
	emp := NewEmployeesRepo()
	uni := NewUnitsRepo(emp)
	emp.SetUnits(uni)
	dis := NewDiseasesRepo()
	rec := NewRecordsRepo(uni, dis, emp)
	return uni, emp, dis, rec, NewUsersRepo()
}

func seedUnit(t *testing.T, repo *UnitsRepo, id, name string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), units.HealthUnit{
		ID: id, Name: name, City: "Natal", State: "RN",
	}))
}

func strPtr(s string) *string { return &s }

func TestUnitsRepo_DeleteCascadesEmployees(t *testing.T) {
	ctx := context.Background()
	uni, emp, _, _, _ := newStore()

	seedUnit(t, uni, "ubs-1", "UBS Centro")
	seedUnit(t, uni, "ubs-2", "UBS Norte")

	require.NoError(t, emp.Create(ctx, employees.Employee{ID: "e1", Name: "Dra. Ana", Role: employees.RoleDoctor, UBSID: "ubs-1", Active: true}))
	require.NoError(t, emp.Create(ctx, employees.Employee{ID: "e2", Name: "Enf. Bia", Role: employees.RoleNurse, UBSID: "ubs-1", Active: true}))
	require.NoError(t, emp.Create(ctx, employees.Employee{ID: "e3", Name: "Dr. Caio", Role: employees.RoleDoctor, UBSID: "ubs-2", Active: true}))

	require.NoError(t, uni.Delete(ctx, "ubs-1"))

	_, err := emp.GetByID(ctx, "e1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = emp.GetByID(ctx, "e2")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	// Funcionário de outra unidade não é atingido.
	_, err = emp.GetByID(ctx, "e3")
	assert.NoError(t, err)
}

func TestEmployeesRepo_RequiresExistingUnit(t *testing.T) {
	ctx := context.Background()
	uni, emp, _, _, _ := newStore()

	err := emp.Create(ctx, employees.Employee{ID: "e1", Name: "Dra. Ana", Role: employees.RoleDoctor, UBSID: "ubs-missing"})
	assert.ErrorIs(t, err, sentinel.ErrInvalidRef)

	seedUnit(t, uni, "ubs-1", "UBS Centro")
	assert.NoError(t, emp.Create(ctx, employees.Employee{ID: "e1", Name: "Dra. Ana", Role: employees.RoleDoctor, UBSID: "ubs-1"}))
}

func TestEmployeesRepo_CountActiveDoctors(t *testing.T) {
	ctx := context.Background()
	uni, emp, _, _, _ := newStore()
	seedUnit(t, uni, "ubs-1", "UBS Centro")

	require.NoError(t, emp.Create(ctx, employees.Employee{ID: "e1", Role: employees.RoleDoctor, UBSID: "ubs-1", Active: true}))
	require.NoError(t, emp.Create(ctx, employees.Employee{ID: "e2", Role: employees.RoleDoctor, UBSID: "ubs-1", Active: false}))
	require.NoError(t, emp.Create(ctx, employees.Employee{ID: "e3", Role: employees.RoleNurse, UBSID: "ubs-1", Active: true}))

	n, err := emp.CountActiveDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecordsRepo_ChecksRefsOnWrite(t *testing.T) {
	ctx := context.Background()
	uni, _, dis, rec, _ := newStore()

	err := rec.Create(ctx, records.MedicalRecord{ID: "r1", UBSID: strPtr("ubs-missing")})
	assert.ErrorIs(t, err, sentinel.ErrInvalidRef)

	err = rec.Create(ctx, records.MedicalRecord{ID: "r1", DiseaseID: strPtr("dis-missing")})
	assert.ErrorIs(t, err, sentinel.ErrInvalidRef)

	seedUnit(t, uni, "ubs-1", "UBS Centro")
	require.NoError(t, dis.Create(ctx, diseases.Disease{ID: "dis-1", Name: "Sífilis Congênita"}))

	assert.NoError(t, rec.Create(ctx, records.MedicalRecord{
		ID: "r1", UBSID: strPtr("ubs-1"), DiseaseID: strPtr("dis-1"), Status: records.StatusActive,
	}))
}

func TestRecordsRepo_DanglingRefsSurviveParentDelete(t *testing.T) {
	ctx := context.Background()
	uni, _, _, rec, _ := newStore()
	seedUnit(t, uni, "ubs-1", "UBS Centro")

	require.NoError(t, rec.Create(ctx, records.MedicalRecord{ID: "r1", UBSID: strPtr("ubs-1"), Status: records.StatusActive}))
	require.NoError(t, uni.Delete(ctx, "ubs-1"))

	// O prontuário fica, com a referência pendurada.
	got, err := rec.GetByID(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got.UBSID)
	assert.Equal(t, "ubs-1", *got.UBSID)

	// Mas uma escrita nova apontando para a unidade morta é rejeitada.
	err = rec.Create(ctx, records.MedicalRecord{ID: "r2", UBSID: strPtr("ubs-1")})
	assert.ErrorIs(t, err, sentinel.ErrInvalidRef)
}

func TestRecordsRepo_ListNewestFirstAndFilters(t *testing.T) {
	ctx := context.Background()
	uni, _, dis, rec, _ := newStore()
	seedUnit(t, uni, "ubs-1", "UBS Centro")
	seedUnit(t, uni, "ubs-2", "UBS Norte")
	require.NoError(t, dis.Create(ctx, diseases.Disease{ID: "dis-1", Name: "Sífilis Congênita"}))

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, rec.Create(ctx, records.MedicalRecord{ID: "r1", UBSID: strPtr("ubs-1"), DiseaseID: strPtr("dis-1"), CreatedAt: base}))
	require.NoError(t, rec.Create(ctx, records.MedicalRecord{ID: "r2", UBSID: strPtr("ubs-2"), CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, rec.Create(ctx, records.MedicalRecord{ID: "r3", UBSID: strPtr("ubs-1"), CreatedAt: base.Add(2 * time.Hour)}))

	all, err := rec.List(ctx, records.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r3", all[0].ID)
	assert.Equal(t, "r2", all[1].ID)
	assert.Equal(t, "r1", all[2].ID)

	byUnit, err := rec.List(ctx, records.ListFilter{UBSID: "ubs-1"})
	require.NoError(t, err)
	require.Len(t, byUnit, 2)

	byDisease, err := rec.List(ctx, records.ListFilter{DiseaseID: "dis-1"})
	require.NoError(t, err)
	require.Len(t, byDisease, 1)
	assert.Equal(t, "r1", byDisease[0].ID)
}

func TestRecordsRepo_Counts(t *testing.T) {
	ctx := context.Background()
	uni, _, _, rec, _ := newStore()
	seedUnit(t, uni, "ubs-1", "UBS Centro")

	require.NoError(t, rec.Create(ctx, records.MedicalRecord{ID: "r1", UBSID: strPtr("ubs-1"), Status: records.StatusActive}))
	require.NoError(t, rec.Create(ctx, records.MedicalRecord{ID: "r2", UBSID: strPtr("ubs-1"), Status: records.StatusCompleted}))
	require.NoError(t, rec.Create(ctx, records.MedicalRecord{ID: "r3", Status: records.StatusActive}))

	total, active, err := rec.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, active)

	n, err := rec.CountByUnit(ctx, "ubs-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDiseasesRepo_NameUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	_, _, dis, _, _ := newStore()

	require.NoError(t, dis.Create(ctx, diseases.Disease{ID: "d1", Name: "Sífilis Congênita"}))

	err := dis.Create(ctx, diseases.Disease{ID: "d2", Name: "sífilis congênita"})
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	// Update também não pode colidir com outro nome existente.
	require.NoError(t, dis.Create(ctx, diseases.Disease{ID: "d3", Name: "Dengue"}))
	err = dis.Update(ctx, diseases.Disease{ID: "d3", Name: "SÍFILIS CONGÊNITA"})
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestUnitsRepo_ListAllOrdersByName(t *testing.T) {
	ctx := context.Background()
	uni, _, _, _, _ := newStore()

	seedUnit(t, uni, "u1", "Ubs Zona Sul")
	seedUnit(t, uni, "u2", "UBS Árvore Grande")
	seedUnit(t, uni, "u3", "UBS Central")

	got, err := uni.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordenação pt-BR: acento não joga o nome pro fim da lista.
	assert.Equal(t, "UBS Árvore Grande", got[0].Name)
	assert.Equal(t, "UBS Central", got[1].Name)
	assert.Equal(t, "Ubs Zona Sul", got[2].Name)
}

func TestUsersRepo_UsernameUnique(t *testing.T) {
	ctx := context.Background()
	_, _, _, _, usr := newStore()

	require.NoError(t, usr.Create(ctx, users.User{ID: "u1", Username: "maria", Role: users.RoleAdmin}))

	err := usr.Create(ctx, users.User{ID: "u2", Username: "Maria", Role: users.RoleNurse})
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	got, err := usr.GetByUsername(ctx, "MARIA")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}
