package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// In-memory repository stubs shared by the service tests. Each stub enforces
// the same uniqueness rules as the Mongo implementations so the services see
// identical error behaviour.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) SearchByName(_ context.Context, text string) ([]*domain.User, error) {
	var out []*domain.User
	needle := strings.ToLower(text)
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), needle) || strings.Contains(strings.ToLower(u.Surname), needle) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type recoveryEntry struct {
	email   string
	expires time.Time
}

type stubRecoveryStore struct {
	tokens map[string]recoveryEntry
}

func newStubRecoveryStore() *stubRecoveryStore {
	return &stubRecoveryStore{tokens: make(map[string]recoveryEntry)}
}

func (s *stubRecoveryStore) Put(_ context.Context, token, email string, ttl time.Duration) error {
	s.tokens[token] = recoveryEntry{email: email, expires: time.Now().Add(ttl)}
	return nil
}

func (s *stubRecoveryStore) Take(_ context.Context, token string) (string, error) {
	entry, ok := s.tokens[token]
	if !ok || time.Now().After(entry.expires) {
		return "", domain.ErrRecoveryTokenInvalid
	}
	delete(s.tokens, token)
	return entry.email, nil
}

type stubLabRepo struct {
	seq  int
	labs map[string]*domain.Laboratory
}

func newStubLabRepo() *stubLabRepo {
	return &stubLabRepo{labs: make(map[string]*domain.Laboratory)}
}

func cloneLab(l *domain.Laboratory) *domain.Laboratory {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

func (r *stubLabRepo) Create(_ context.Context, lab *domain.Laboratory) (*domain.Laboratory, error) {
	for _, existing := range r.labs {
		if strings.EqualFold(existing.Email, lab.Email) {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	copy := cloneLab(lab)
	copy.ID = fmt.Sprintf("lab-%d", r.seq)
	r.labs[copy.ID] = cloneLab(copy)
	return copy, nil
}

func (r *stubLabRepo) FindByID(_ context.Context, id string) (*domain.Laboratory, error) {
	l, ok := r.labs[id]
	if !ok {
		return nil, domain.ErrLabNotFound
	}
	return cloneLab(l), nil
}

func (r *stubLabRepo) FindByEmail(_ context.Context, email string) (*domain.Laboratory, error) {
	for _, l := range r.labs {
		if strings.EqualFold(l.Email, email) {
			return cloneLab(l), nil
		}
	}
	return nil, domain.ErrLabNotFound
}

func (r *stubLabRepo) FindAll(_ context.Context) ([]*domain.Laboratory, error) {
	var out []*domain.Laboratory
	for _, l := range r.labs {
		out = append(out, cloneLab(l))
	}
	return out, nil
}

func (r *stubLabRepo) FindActive(_ context.Context) ([]*domain.Laboratory, error) {
	var out []*domain.Laboratory
	for _, l := range r.labs {
		if l.Active {
			out = append(out, cloneLab(l))
		}
	}
	return out, nil
}

func (r *stubLabRepo) FindBySpecialty(_ context.Context, specialty string) ([]*domain.Laboratory, error) {
	var out []*domain.Laboratory
	for _, l := range r.labs {
		if strings.EqualFold(l.Specialty, specialty) {
			out = append(out, cloneLab(l))
		}
	}
	return out, nil
}

func (r *stubLabRepo) SearchByName(_ context.Context, name string) ([]*domain.Laboratory, error) {
	var out []*domain.Laboratory
	needle := strings.ToLower(name)
	for _, l := range r.labs {
		if strings.Contains(strings.ToLower(l.Name), needle) {
			out = append(out, cloneLab(l))
		}
	}
	return out, nil
}

func (r *stubLabRepo) Update(_ context.Context, lab *domain.Laboratory) (*domain.Laboratory, error) {
	if _, ok := r.labs[lab.ID]; !ok {
		return nil, domain.ErrLabNotFound
	}
	r.labs[lab.ID] = cloneLab(lab)
	return cloneLab(lab), nil
}

type stubAssignmentRepo struct {
	assignments []*domain.Assignment
}

func (r *stubAssignmentRepo) Create(_ context.Context, a *domain.Assignment) error {
	for _, existing := range r.assignments {
		if existing.LabID == a.LabID && existing.AnalysisTypeID == a.AnalysisTypeID {
			return domain.ErrAssignmentExists
		}
	}
	clone := *a
	r.assignments = append(r.assignments, &clone)
	return nil
}

func (r *stubAssignmentRepo) FindByLab(_ context.Context, labID string) ([]*domain.Assignment, error) {
	var out []*domain.Assignment
	for _, a := range r.assignments {
		if a.LabID == labID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubTypeRepo struct {
	seq   int
	types map[string]*domain.AnalysisType
}

func newStubTypeRepo() *stubTypeRepo {
	return &stubTypeRepo{types: make(map[string]*domain.AnalysisType)}
}

func cloneType(t *domain.AnalysisType) *domain.AnalysisType {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTypeRepo) Create(_ context.Context, t *domain.AnalysisType) (*domain.AnalysisType, error) {
	r.seq++
	copy := cloneType(t)
	copy.ID = fmt.Sprintf("type-%d", r.seq)
	r.types[copy.ID] = cloneType(copy)
	return copy, nil
}

func (r *stubTypeRepo) FindByID(_ context.Context, id string) (*domain.AnalysisType, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, domain.ErrAnalysisTypeNotFound
	}
	return cloneType(t), nil
}

func (r *stubTypeRepo) FindAll(_ context.Context) ([]*domain.AnalysisType, error) {
	var out []*domain.AnalysisType
	for _, t := range r.types {
		out = append(out, cloneType(t))
	}
	return out, nil
}

func (r *stubTypeRepo) FindActive(_ context.Context) ([]*domain.AnalysisType, error) {
	var out []*domain.AnalysisType
	for _, t := range r.types {
		if t.Active {
			out = append(out, cloneType(t))
		}
	}
	return out, nil
}

func (r *stubTypeRepo) SearchByName(_ context.Context, name string) ([]*domain.AnalysisType, error) {
	var out []*domain.AnalysisType
	needle := strings.ToLower(name)
	for _, t := range r.types {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			out = append(out, cloneType(t))
		}
	}
	return out, nil
}

func (r *stubTypeRepo) Update(_ context.Context, t *domain.AnalysisType) (*domain.AnalysisType, error) {
	if _, ok := r.types[t.ID]; !ok {
		return nil, domain.ErrAnalysisTypeNotFound
	}
	r.types[t.ID] = cloneType(t)
	return cloneType(t), nil
}

type stubAppointmentRepo struct {
	seq          int
	appointments map[string]*domain.Appointment
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[string]*domain.Appointment)}
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.seq++
	copy := cloneAppointment(a)
	copy.ID = fmt.Sprintf("appt-%d", r.seq)
	r.appointments[copy.ID] = cloneAppointment(copy)
	return copy, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return cloneAppointment(a), nil
}

func (r *stubAppointmentRepo) FindAll(_ context.Context) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		out = append(out, cloneAppointment(a))
	}
	return out, nil
}

func (r *stubAppointmentRepo) FindByPatient(_ context.Context, patientID string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) FindByLab(_ context.Context, labID string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.LabID == labID {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) FindUpcomingByLab(_ context.Context, labID string, after time.Time) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.LabID == labID && a.ScheduledAt.After(after) && a.Status != domain.AppointmentCancelled {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) FindByStatus(_ context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.Status == status {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if _, ok := r.appointments[a.ID]; !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	r.appointments[a.ID] = cloneAppointment(a)
	return cloneAppointment(a), nil
}

func (r *stubAppointmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

type stubResultRepo struct {
	seq     int
	results map[string]*domain.Result
}

func newStubResultRepo() *stubResultRepo {
	return &stubResultRepo{results: make(map[string]*domain.Result)}
}

func cloneResult(res *domain.Result) *domain.Result {
	if res == nil {
		return nil
	}
	clone := *res
	return &clone
}

func (r *stubResultRepo) Create(_ context.Context, res *domain.Result) (*domain.Result, error) {
	for _, existing := range r.results {
		if existing.AppointmentID == res.AppointmentID {
			return nil, domain.ErrResultExists
		}
	}
	r.seq++
	copy := cloneResult(res)
	copy.ID = fmt.Sprintf("result-%d", r.seq)
	r.results[copy.ID] = cloneResult(copy)
	return copy, nil
}

func (r *stubResultRepo) FindByID(_ context.Context, id string) (*domain.Result, error) {
	res, ok := r.results[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return cloneResult(res), nil
}

func (r *stubResultRepo) FindByAppointment(_ context.Context, appointmentID string) (*domain.Result, error) {
	for _, res := range r.results {
		if res.AppointmentID == appointmentID {
			return cloneResult(res), nil
		}
	}
	return nil, domain.ErrResultNotFound
}

func (r *stubResultRepo) FindAll(_ context.Context) ([]*domain.Result, error) {
	var out []*domain.Result
	for _, res := range r.results {
		out = append(out, cloneResult(res))
	}
	return out, nil
}

func (r *stubResultRepo) FindByTechnician(_ context.Context, technicianID string) ([]*domain.Result, error) {
	var out []*domain.Result
	for _, res := range r.results {
		if res.TechnicianID == technicianID {
			out = append(out, cloneResult(res))
		}
	}
	return out, nil
}

func (r *stubResultRepo) FindByStatus(_ context.Context, status domain.ResultStatus) ([]*domain.Result, error) {
	var out []*domain.Result
	for _, res := range r.results {
		if res.Status == status {
			out = append(out, cloneResult(res))
		}
	}
	return out, nil
}

func (r *stubResultRepo) Update(_ context.Context, res *domain.Result) (*domain.Result, error) {
	if _, ok := r.results[res.ID]; !ok {
		return nil, domain.ErrResultNotFound
	}
	r.results[res.ID] = cloneResult(res)
	return cloneResult(res), nil
}

func (r *stubResultRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.results[id]; !ok {
		return domain.ErrResultNotFound
	}
	delete(r.results, id)
	return nil
}
