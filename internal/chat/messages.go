package chat

import (
	"slices"

	"github.com/samber/lo"

	"github.com/naveenspark/parley/pkg/domain"
)

func indexOfMessage(msgs []domain.Message, id string) int {
	return slices.IndexFunc(msgs, func(m domain.Message) bool { return m.ID == id })
}

func appendMessage(msgs []domain.Message, m domain.Message) []domain.Message {
	out := make([]domain.Message, 0, len(msgs)+1)
	out = append(out, msgs...)
	return append(out, m)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func removeMessage(msgs []domain.Message, id string) []domain.Message {
	return lo.Reject(msgs, func(m domain.Message, _ int) bool { return m.ID == id })
}

// reconcile swaps the pending entry localID for the confirmed copy, keeping its position.
// If the confirmed id is already listed the pending entry is dropped instead.
// A missing pending entry leaves msgs unchanged.
func reconcile(msgs []domain.Message, localID string, confirmed domain.Message) []domain.Message {
	idx := indexOfMessage(msgs, localID)
	if idx < 0 {
		return msgs
	}
	confirmed.State = domain.MessageConfirmed
	if indexOfMessage(msgs, confirmed.ID) >= 0 {
		return removeMessage(msgs, localID)
	}
	out := slices.Clone(msgs)
	out[idx] = confirmed
	return out
}

// mergeHistory returns fetched history followed by any local entries it does not already contain.
func mergeHistory(fetched, local []domain.Message) []domain.Message {
	seen := make(map[string]struct{}, len(fetched))
	out := make([]domain.Message, 0, len(fetched)+len(local))
	for _, m := range fetched {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		m.State = domain.MessageConfirmed
		out = append(out, m)
	}
	for _, m := range local {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// IsOwnMessage reports whether m was sent by the local user. Global room messages
// match on the anonymous session username, every other room on the caller's user id.
func IsOwnMessage(m domain.Message, sessionUsername, callerID string) bool {
	if m.RoomID == domain.GlobalRoomID {
		return sessionUsername != "" && m.Username == sessionUsername
	}
	return callerID != "" && m.UserID == callerID
}
