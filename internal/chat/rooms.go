package chat

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/naveenspark/parley/pkg/domain"
)

// EnsureGlobal returns rooms with exactly one global room at the front.
// Duplicate room ids are dropped, keeping the first occurrence.
func EnsureGlobal(rooms []domain.Room, now time.Time) []domain.Room {
	rooms = lo.UniqBy(rooms, func(r domain.Room) string { return r.ID })

	global, idx, found := lo.FindIndexOf(rooms, func(r domain.Room) bool { return r.ID == domain.GlobalRoomID })
	if !found {
		global = domain.NewGlobalRoom(now)
	} else {
		global.Type = domain.RoomTypeGlobal
		if global.MaxMembers == 0 {
			global.MaxMembers = domain.GlobalMaxMembers
		}
	}

	out := make([]domain.Room, 0, len(rooms)+1)
	out = append(out, global)
	for i, r := range rooms {
		if found && i == idx {
			continue
		}
		out = append(out, r)
	}
	return out
}

func findRoom(rooms []domain.Room, id string) (domain.Room, bool) {
	return lo.Find(rooms, func(r domain.Room) bool { return r.ID == id })
}

func hasRoom(rooms []domain.Room, id string) bool {
	return lo.ContainsBy(rooms, func(r domain.Room) bool { return r.ID == id })
}

// addRoom appends r unless a room with the same id is already listed.
func addRoom(rooms []domain.Room, r domain.Room) []domain.Room {
	if hasRoom(rooms, r.ID) {
		return rooms
	}
	out := slices.Clone(rooms)
	return append(out, r)
}

// replaceRoom swaps in r at its current position, keeping the local unread count.
func replaceRoom(rooms []domain.Room, r domain.Room) []domain.Room {
	return lo.Map(rooms, func(old domain.Room, _ int) domain.Room {
		if old.ID != r.ID {
			return old
		}
		r.UnreadCount = old.UnreadCount
		return r
	})
}

func removeRoom(rooms []domain.Room, id string) []domain.Room {
	return lo.Reject(rooms, func(r domain.Room, _ int) bool { return r.ID == id })
}

func setUnread(rooms []domain.Room, id string, fn func(int) int) []domain.Room {
	return lo.Map(rooms, func(r domain.Room, _ int) domain.Room {
		if r.ID == id {
			r.UnreadCount = fn(r.UnreadCount)
		}
		return r
	})
}

// carryUnread copies unread counts from prev onto a freshly fetched room list.
func carryUnread(fetched, prev []domain.Room) []domain.Room {
	counts := lo.SliceToMap(prev, func(r domain.Room) (string, int) { return r.ID, r.UnreadCount })
	return lo.Map(fetched, func(r domain.Room, _ int) domain.Room {
		r.UnreadCount = counts[r.ID]
		return r
	})
}

// TotalUnread sums unread counts across rooms.
func TotalUnread(rooms []domain.Room) int {
	return lo.SumBy(rooms, func(r domain.Room) int { return r.UnreadCount })
}
