package game

// Fight is the combat resolver: a pure rank comparison producing zero, one,
// or two destroy effects. Rank is consumed whole on each comparison; there
// is no partial damage and no persistent health.
func (g *Game) Fight(defender, attacker *Card) error {
	attackerRank := attacker.Rank()
	defenderRank := defender.Rank()

	switch {
	case attackerRank > defenderRank:
		return g.Destroy(defender)
	case attackerRank < defenderRank:
		return g.Destroy(attacker)
	default:
		if err := g.Destroy(defender); err != nil {
			return err
		}
		return g.Destroy(attacker)
	}
}
