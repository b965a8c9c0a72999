package services

import (
	"context"
	"sort"
	"sync"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

// Фейковые репозитории держат данные в памяти и повторяют контрактное
// поведение настоящих (ErrNotFound, ErrEmailTaken, срез team_id и т.д.),
// чтобы сервисы можно было гонять без живой базы.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, limit uint64) ([]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) GetTechnicians(ctx context.Context, limit uint64) ([]entities.User, error) {
	all, _ := r.GetUsers(ctx, limit)
	out := make([]entities.User, 0)
	for _, u := range all {
		if u.Role == constants.RoleTechnician || u.Role == constants.RoleManager {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SetTeamForUsersInTx(ctx context.Context, tx pgx.Tx, ids []string, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			u.TeamID = null.StringFrom(teamID)
		}
	}
	return nil
}

func (r *fakeUserRepo) UnsetTeamForUsersInTx(ctx context.Context, tx pgx.Tx, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			u.TeamID = null.String{}
		}
	}
	return nil
}

func (r *fakeUserRepo) UnsetTeamByTeamInTx(ctx context.Context, tx pgx.Tx, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.TeamID.Valid && u.TeamID.String == teamID {
			u.TeamID = null.String{}
		}
	}
	return nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[string]*entities.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*entities.Team)}
}

func (r *fakeTeamRepo) CreateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) FindTeam(ctx context.Context, id string) (*entities.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) GetTeams(ctx context.Context, limit uint64) ([]entities.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTeamRepo) UpdateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) DeleteTeamInTx(ctx context.Context, tx pgx.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakeEquipmentRepo struct {
	mu    sync.Mutex
	items map[string]*entities.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[string]*entities.Equipment)}
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, equipment *entities.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *equipment
	r.items[equipment.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, limit uint64) ([]entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Equipment, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id string, payload dto.CreateEquipmentDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Name = payload.Name
	e.SerialNumber = payload.SerialNumber
	e.Location = payload.Location
	e.Department = payload.Department
	e.Category = payload.Category
	e.EmployeeOwner = null.StringFromPtr(payload.EmployeeOwner)
	e.PurchaseDate = null.StringFromPtr(payload.PurchaseDate)
	e.WarrantyExpiry = null.StringFromPtr(payload.WarrantyExpiry)
	e.Notes = null.StringFromPtr(payload.Notes)
	e.AssignedTeamID = null.StringFromPtr(payload.AssignedTeamID)
	e.DefaultTechnicianID = null.StringFromPtr(payload.DefaultTechnicianID)
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) MarkUnusableInTx(ctx context.Context, tx pgx.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[id]; ok {
		e.IsUsable = false
	}
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*entities.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*entities.Request)}
}

func (r *fakeRequestRepo) CreateRequest(ctx context.Context, request *entities.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) FindRequest(ctx context.Context, id string) (*entities.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rq, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *rq
	return &cp, nil
}

func (r *fakeRequestRepo) GetRequests(ctx context.Context, filter dto.RequestFilter, limit uint64) ([]entities.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Request, 0, len(r.requests))
	for _, rq := range r.requests {
		if filter.Stage != "" && rq.Stage != filter.Stage {
			continue
		}
		if filter.RequestType != "" && rq.RequestType != filter.RequestType {
			continue
		}
		out = append(out, *rq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRequestRepo) GetRequestsByEquipment(ctx context.Context, equipmentID string, limit uint64) ([]entities.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Request, 0)
	for _, rq := range r.requests {
		if rq.EquipmentID == equipmentID {
			out = append(out, *rq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request *entities.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) DeleteRequest(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeRequestRepo) CountOpenByEquipment(ctx context.Context, equipmentID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rq := range r.requests {
		if rq.EquipmentID != equipmentID {
			continue
		}
		if rq.Stage == constants.StageRepaired || rq.Stage == constants.StageScrap {
			continue
		}
		n++
	}
	return n, nil
}

// fakeAnalyticsRepo считает те же агрегаты, что и SQL, но поверх
// фейковых хранилищ заявок и оборудования.
type fakeAnalyticsRepo struct {
	requests  *fakeRequestRepo
	equipment *fakeEquipmentRepo
}

func (r *fakeAnalyticsRepo) CountRequestsByStage(ctx context.Context, stage string) (int64, error) {
	all, _ := r.requests.GetRequests(ctx, dto.RequestFilter{Stage: stage}, constants.MaxListLimit)
	return int64(len(all)), nil
}

func (r *fakeAnalyticsRepo) CountRequestsByTeamID(ctx context.Context, teamID string) (int64, error) {
	all, _ := r.requests.GetRequests(ctx, dto.RequestFilter{}, constants.MaxListLimit)
	var n int64
	for _, rq := range all {
		if rq.TeamID.Valid && rq.TeamID.String == teamID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAnalyticsRepo) CountOverdue(ctx context.Context, today string) (int64, error) {
	all, _ := r.requests.GetRequests(ctx, dto.RequestFilter{}, constants.MaxListLimit)
	var n int64
	for _, rq := range all {
		if !rq.ScheduledDate.Valid || rq.ScheduledDate.String >= today {
			continue
		}
		if rq.Stage == constants.StageRepaired || rq.Stage == constants.StageScrap {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeAnalyticsRepo) CountEquipments(ctx context.Context) (int64, error) {
	all, _ := r.equipment.GetEquipments(ctx, constants.MaxListLimit)
	return int64(len(all)), nil
}

func (r *fakeAnalyticsRepo) CountUnusableEquipments(ctx context.Context) (int64, error) {
	all, _ := r.equipment.GetEquipments(ctx, constants.MaxListLimit)
	var n int64
	for _, e := range all {
		if !e.IsUsable {
			n++
		}
	}
	return n, nil
}

func (r *fakeAnalyticsRepo) CountRequests(ctx context.Context) (int64, error) {
	all, _ := r.requests.GetRequests(ctx, dto.RequestFilter{}, constants.MaxListLimit)
	return int64(len(all)), nil
}

func (r *fakeAnalyticsRepo) CountRequestsByType(ctx context.Context, requestType string) (int64, error) {
	all, _ := r.requests.GetRequests(ctx, dto.RequestFilter{RequestType: requestType}, constants.MaxListLimit)
	return int64(len(all)), nil
}

func (r *fakeAnalyticsRepo) GroupRequestsByCategory(ctx context.Context) ([]dto.CategoryCountDTO, error) {
	all, _ := r.requests.GetRequests(ctx, dto.RequestFilter{}, constants.MaxListLimit)
	buckets := make(map[null.String]int64)
	for _, rq := range all {
		buckets[rq.EquipmentCategory]++
	}
	out := make([]dto.CategoryCountDTO, 0, len(buckets))
	for k, v := range buckets {
		out = append(out, dto.CategoryCountDTO{Category: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category.String < out[j].Category.String })
	return out, nil
}

func (r *fakeAnalyticsRepo) GroupRequestsByTeamName(ctx context.Context) ([]dto.TeamNameCountDTO, error) {
	all, _ := r.requests.GetRequests(ctx, dto.RequestFilter{}, constants.MaxListLimit)
	buckets := make(map[null.String]int64)
	for _, rq := range all {
		buckets[rq.TeamName]++
	}
	out := make([]dto.TeamNameCountDTO, 0, len(buckets))
	for k, v := range buckets {
		out = append(out, dto.TeamNameCountDTO{Team: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team.String < out[j].Team.String })
	return out, nil
}
