package brackets

import "fmt"

// PropagateByes resolves every match whose outcome is already forced: one
// slot occupied while the other can never be filled. It walks the combined
// match map with a worklist local to the call, delivering each forced winner
// along its WinnerTo edge and discarding the loser edge (a bye has no loser,
// so it must not feed the losers bracket). A match with no possible entrant
// at all is voided instead: it resolves nothing, and both its outgoing edges
// are discarded so downstream matches do not wait on it. Delivering a winner can force the
// next match in turn, so resolution cascades until a fixpoint.
//
// Generators call this once after wiring; the result-recording layer calls it
// again after each real result to resolve runtime walkovers. Matches already
// marked played are left untouched.
func PropagateByes(matches []*Match) error {
	byID := make(map[string]*Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	// pending[id] counts, per slot, how many unresolved matches still route
	// an occupant into that slot. A nil slot with zero pending inbound edges
	// is unfillable.
	pending := make(map[string]*[2]int, len(matches))
	for _, m := range matches {
		pending[m.ID] = &[2]int{}
	}
	for _, m := range matches {
		if m.Played {
			continue
		}
		for _, adv := range []*Advancement{m.WinnerTo, m.LoserTo} {
			if adv == nil || adv.IsPlacement() {
				continue
			}
			counts, ok := pending[adv.MatchID]
			if !ok {
				return fmt.Errorf("%w: match %s routes to %s", ErrInconsistentBracket, m.ID, adv.MatchID)
			}
			counts[adv.Slot-1]++
		}
	}

	queue := make([]string, 0, len(matches))
	for _, m := range matches {
		queue = append(queue, m.ID)
	}

	drop := func(adv *Advancement) {
		if adv == nil || adv.IsPlacement() {
			return
		}
		pending[adv.MatchID][adv.Slot-1]--
		queue = append(queue, adv.MatchID)
	}

	// void marks matches no participant can ever reach (every feeder was a
	// bye). They stay unplayed, but their outgoing edges are dead.
	void := make(map[string]bool)

	for len(queue) > 0 {
		m := byID[queue[0]]
		queue = queue[1:]
		if m.Played || void[m.ID] {
			continue
		}

		counts := pending[m.ID]
		dead1 := m.Registration1ID == nil && counts[0] == 0
		dead2 := m.Registration2ID == nil && counts[1] == 0

		var winner *int
		switch {
		case m.Registration1ID != nil && dead2:
			winner = m.Registration1ID
		case m.Registration2ID != nil && dead1:
			winner = m.Registration2ID
		case dead1 && dead2:
			// Adjacent byes can drain both slots, e.g. two neighbouring
			// winners-round-1 byes leave their shared losers match without a
			// possible entrant. The match is void: it produces no winner, and
			// anything downstream waiting on it must stop waiting.
			void[m.ID] = true
			drop(m.WinnerTo)
			drop(m.LoserTo)
			continue
		default:
			continue
		}

		m.Played = true
		m.IsBye = true
		m.WinnerID = winner

		if adv := m.WinnerTo; adv != nil && !adv.IsPlacement() {
			target, ok := byID[adv.MatchID]
			if !ok {
				return fmt.Errorf("%w: match %s routes to %s", ErrInconsistentBracket, m.ID, adv.MatchID)
			}
			target.setSlot(adv.Slot, winner)
			drop(adv)
		}
		drop(m.LoserTo)
	}

	return nil
}
