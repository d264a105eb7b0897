package game

// Faction bundles a deck's template table with its presentation assets. The
// deck ordering is load-bearing: cards cross the wire as indices into it, so
// both ends of a match must hold identical tables for the chosen faction.
type Faction struct {
	Name     string
	IconPath string
	CardBack string
	Deck     []*Template
}

// buildDeck instantiates one card per deck template for the given owner,
// assigning each its wire index.
func (f *Faction) buildDeck(owner *Player) []*Card {
	deck := make([]*Card, 0, len(f.Deck))
	for i, tpl := range f.Deck {
		deck = append(deck, &Card{
			tpl:    tpl,
			wireID: i,
			owner:  owner,
			zone:   ZoneDeck,
		})
	}
	return deck
}
