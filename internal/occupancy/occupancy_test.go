package occupancy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zayura-backend/internal/model"
)

func room(status model.RoomStatus) model.Room {
	r := model.Room{RoomNumber: "101", Status: status}
	r.ID = uuid.New()
	return r
}

func TestSync(t *testing.T) {
	testCases := []struct {
		name     string
		stored   model.RoomStatus
		tenancy  model.TenancyStatus
		expected model.RoomStatus
	}{
		{name: "Active tenancy marks available room occupied", stored: model.RoomAvailable, tenancy: model.TenancyActive, expected: model.RoomOccupied},
		{name: "Active tenancy overrides maintenance", stored: model.RoomMaintenance, tenancy: model.TenancyActive, expected: model.RoomOccupied},
		{name: "Occupied room without tenant becomes available", stored: model.RoomOccupied, expected: model.RoomAvailable},
		{name: "Completed tenancy does not count", stored: model.RoomOccupied, tenancy: model.TenancyCompleted, expected: model.RoomAvailable},
		{name: "Maintenance without tenant stays", stored: model.RoomMaintenance, expected: model.RoomMaintenance},
		{name: "Available without tenant stays", stored: model.RoomAvailable, expected: model.RoomAvailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := room(tc.stored)
			var tenancies []model.Tenancy
			if tc.tenancy != "" {
				tenancies = append(tenancies, model.Tenancy{RoomID: r.ID, Status: tc.tenancy})
			}

			got := Sync([]model.Room{r}, tenancies)
			require.Len(t, got, 1)
			assert.Equal(t, tc.expected, got[0].Status)
		})
	}
}

func TestSyncDoesNotMutateInput(t *testing.T) {
	rooms := []model.Room{room(model.RoomOccupied)}
	out := Sync(rooms, nil)
	assert.Equal(t, model.RoomOccupied, rooms[0].Status)
	assert.Equal(t, model.RoomAvailable, out[0].Status)
}

func TestSyncIsIdempotent(t *testing.T) {
	a, b, c := room(model.RoomAvailable), room(model.RoomOccupied), room(model.RoomMaintenance)
	tenancies := []model.Tenancy{{RoomID: a.ID, Status: model.TenancyActive}}

	once := Sync([]model.Room{a, b, c}, tenancies)
	twice := Sync(once, tenancies)
	assert.Equal(t, once, twice)
}

func TestDrift(t *testing.T) {
	a, b, c := room(model.RoomAvailable), room(model.RoomOccupied), room(model.RoomOccupied)
	tenancies := []model.Tenancy{
		{RoomID: a.ID, Status: model.TenancyActive},
		{RoomID: b.ID, Status: model.TenancyActive},
	}

	drift := Drift([]model.Room{a, b, c}, tenancies)
	require.Len(t, drift, 2)
	assert.Equal(t, a.ID, drift[0].ID)
	assert.Equal(t, model.RoomOccupied, drift[0].Status)
	assert.Equal(t, c.ID, drift[1].ID)
	assert.Equal(t, model.RoomAvailable, drift[1].Status)
}
