// Package occupancy derives room availability from tenancy records.
package occupancy

import (
	"github.com/google/uuid"

	"zayura-backend/internal/model"
)

// Status returns the effective status of room given the set of rooms with an
// active tenancy. An active tenancy always wins; a room marked occupied with
// nobody in it falls back to available; maintenance is left alone.
func Status(room model.Room, active map[uuid.UUID]bool) model.RoomStatus {
	if active[room.ID] {
		return model.RoomOccupied
	}
	if room.Status == model.RoomOccupied {
		return model.RoomAvailable
	}
	return room.Status
}

// ActiveRooms collects the IDs of rooms referenced by an active tenancy.
func ActiveRooms(tenancies []model.Tenancy) map[uuid.UUID]bool {
	active := make(map[uuid.UUID]bool, len(tenancies))
	for _, t := range tenancies {
		if t.Status == model.TenancyActive {
			active[t.RoomID] = true
		}
	}
	return active
}

// Sync returns a copy of rooms with every status reconciled against tenancies.
// The input slice is not modified.
func Sync(rooms []model.Room, tenancies []model.Tenancy) []model.Room {
	active := ActiveRooms(tenancies)
	out := make([]model.Room, len(rooms))
	for i, r := range rooms {
		r.Status = Status(r, active)
		out[i] = r
	}
	return out
}

// Drift lists the rooms whose stored status disagrees with Sync.
func Drift(rooms []model.Room, tenancies []model.Tenancy) []model.Room {
	active := ActiveRooms(tenancies)
	var drift []model.Room
	for _, r := range rooms {
		if s := Status(r, active); s != r.Status {
			r.Status = s
			drift = append(drift, r)
		}
	}
	return drift
}
