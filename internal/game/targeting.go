package game

// TargetingSession records an ability that entered play but cannot finish
// until a client supplies a target. It bridges two network round-trips: the
// server announces the pending card with a requestTarget frame, and the
// session resolves when the owning client answers with acceptTarget.
//
// Sessions are short-lived: created during spawn resolution and destroyed on
// completion, on an invalid target, or on an explicit no-target answer. An
// out-of-range answer leaves the session open so the client can retry
// against fresh state.
type TargetingSession struct {
	card    *Card
	source  *Player
	side    *Player
	zones   []Zone
	resolve func(target *Card) error
}

// Card returns the card whose ability is awaiting a target.
func (s *TargetingSession) Card() *Card { return s.card }

// Source returns the player who must supply the target.
func (s *TargetingSession) Source() *Player { return s.source }

// Side returns the player whose board the answer's zone and index reference.
func (s *TargetingSession) Side() *Player { return s.side }

// Position locates the pending card on its owner's face-up board so the
// requestTarget frame can identify it to the client.
func (s *TargetingSession) Position() (Zone, int) {
	for i, c := range s.source.faceups {
		if c == s.card {
			return ZoneFaceup, i
		}
	}
	for i, c := range s.source.facedowns {
		if c == s.card {
			return ZoneFacedown, i
		}
	}
	return s.card.zone, -1
}

// allowsZone reports whether the session accepts targets from the zone.
func (s *TargetingSession) allowsZone(z Zone) bool {
	if len(s.zones) == 0 {
		return z == ZoneFaceup || z == ZoneFacedown
	}
	for _, allowed := range s.zones {
		if allowed == z {
			return true
		}
	}
	return false
}

// hasCandidates reports whether any target exists for the session's card on
// the given side. The pending card itself never counts.
func hasCandidates(card *Card, side *Player, zones []Zone) bool {
	if len(zones) == 0 {
		zones = []Zone{ZoneFaceup, ZoneFacedown}
	}
	for _, z := range zones {
		for _, c := range side.zoneCards(z) {
			if c != card {
				return true
			}
		}
	}
	return false
}
