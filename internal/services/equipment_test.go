package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type equipmentFixture struct {
	equipmentRepo *fakeEquipmentRepo
	teamRepo      *fakeTeamRepo
	userRepo      *fakeUserRepo
	requestRepo   *fakeRequestRepo
	svc           EquipmentServiceInterface
}

func newEquipmentFixture() *equipmentFixture {
	f := &equipmentFixture{
		equipmentRepo: newFakeEquipmentRepo(),
		teamRepo:      newFakeTeamRepo(),
		userRepo:      newFakeUserRepo(),
		requestRepo:   newFakeRequestRepo(),
	}
	f.svc = NewEquipmentService(f.equipmentRepo, f.teamRepo, f.userRepo, f.requestRepo, zap.NewNop())
	return f
}

func basePayload() dto.CreateEquipmentDTO {
	return dto.CreateEquipmentDTO{
		Name:         "Компрессор",
		SerialNumber: "SN-001",
		Location:     "Цех 1",
		Department:   "Производство",
		Category:     "Пневматика",
	}
}

func TestCreateEquipmentStartsUsable(t *testing.T) {
	f := newEquipmentFixture()

	created, err := f.svc.CreateEquipment(context.Background(), basePayload())
	require.NoError(t, err)
	assert.True(t, created.IsUsable)
	assert.NotEmpty(t, created.ID)
}

func TestFindEquipmentEnrichment(t *testing.T) {
	f := newEquipmentFixture()

	require.NoError(t, f.teamRepo.CreateTeamInTx(context.Background(), nil, &entities.Team{
		ID: "t1", Name: "Механики", MemberIDs: []string{}, CreatedAt: time.Now().UTC(),
	}))
	seedUser(t, f.userRepo, "tech1", "Мастер")

	payload := basePayload()
	payload.AssignedTeamID = utils.ToPtr("t1")
	payload.DefaultTechnicianID = utils.ToPtr("tech1")
	created, err := f.svc.CreateEquipment(context.Background(), payload)
	require.NoError(t, err)

	found, err := f.svc.FindEquipment(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Team)
	assert.Equal(t, "Механики", found.Team.Name)
	require.NotNil(t, found.Technician)
	assert.Equal(t, "Мастер", found.Technician.Name)
	assert.Equal(t, int64(0), found.OpenRequestCount)
}

func TestFindEquipmentDanglingRefsTolerated(t *testing.T) {
	f := newEquipmentFixture()

	payload := basePayload()
	payload.AssignedTeamID = utils.ToPtr("no-such-team")
	payload.DefaultTechnicianID = utils.ToPtr("no-such-user")
	created, err := f.svc.CreateEquipment(context.Background(), payload)
	require.NoError(t, err)

	found, err := f.svc.FindEquipment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Team)
	assert.Nil(t, found.Technician)
}

func TestOpenRequestCountTracksStage(t *testing.T) {
	f := newEquipmentFixture()

	created, err := f.svc.CreateEquipment(context.Background(), basePayload())
	require.NoError(t, err)

	requestSvc := NewRequestService(f.requestRepo, f.equipmentRepo, f.teamRepo, f.userRepo, &fakeTxManager{}, zap.NewNop())
	request, err := requestSvc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		EquipmentID: created.ID,
		Subject:     "Не держит давление",
		RequestType: "corrective",
	})
	require.NoError(t, err)

	found, err := f.svc.FindEquipment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.OpenRequestCount)

	_, err = requestSvc.PatchStage(context.Background(), request.ID, "repaired")
	require.NoError(t, err)

	found, err = f.svc.FindEquipment(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), found.OpenRequestCount, "закрытая заявка выпадает из счётчика")
}

func TestUpdateEquipmentKeepsSnapshotsStale(t *testing.T) {
	f := newEquipmentFixture()

	created, err := f.svc.CreateEquipment(context.Background(), basePayload())
	require.NoError(t, err)

	requestSvc := NewRequestService(f.requestRepo, f.equipmentRepo, f.teamRepo, f.userRepo, &fakeTxManager{}, zap.NewNop())
	request, err := requestSvc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		EquipmentID: created.ID,
		Subject:     "Шумит",
	})
	require.NoError(t, err)
	assert.Equal(t, "Компрессор", request.EquipmentName.String)

	renamed := basePayload()
	renamed.Name = "Компрессор-2"
	_, err = f.svc.UpdateEquipment(context.Background(), created.ID, renamed)
	require.NoError(t, err)

	// заявка хранит имя на момент создания
	after, err := requestSvc.FindRequest(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Компрессор", after.EquipmentName.String)
}

func TestUpdateEquipmentNotFound(t *testing.T) {
	f := newEquipmentFixture()
	_, err := f.svc.UpdateEquipment(context.Background(), "missing", basePayload())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteEquipmentLeavesRequests(t *testing.T) {
	f := newEquipmentFixture()

	created, err := f.svc.CreateEquipment(context.Background(), basePayload())
	require.NoError(t, err)

	requestSvc := NewRequestService(f.requestRepo, f.equipmentRepo, f.teamRepo, f.userRepo, &fakeTxManager{}, zap.NewNop())
	request, err := requestSvc.CreateRequest(context.Background(), dto.CreateRequestDTO{
		EquipmentID: created.ID,
		Subject:     "Сирота",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEquipment(context.Background(), created.ID))

	// каскада нет: заявка остаётся со ссылкой в никуда
	orphan, err := requestSvc.FindRequest(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, orphan.EquipmentID)
}
