package game

import "github.com/tomz197/spacedodge/internal/object"

// LaserHit is one laser destroying one alien.
type LaserHit struct {
	Laser *object.Entity
	Alien *object.Entity
}

// ResolveLaserHits marks every overlapping laser/alien pair destroyed.
// Each laser destroys at most one alien and each alien absorbs at most one
// laser. Destroyed entities stay in the slices until compacted.
func ResolveLaserHits(lasers, aliens []*object.Entity) []LaserHit {
	var hits []LaserHit
	for _, l := range lasers {
		if l.IsDestroyed() {
			continue
		}
		for _, a := range aliens {
			if a.IsDestroyed() {
				continue
			}
			if l.Rect().Intersects(a.Rect()) {
				l.MarkDestroyed()
				a.MarkDestroyed()
				hits = append(hits, LaserHit{Laser: l, Alien: a})
				break
			}
		}
	}
	return hits
}

// FirstPlayerHit returns the first falling entity overlapping the player,
// scanning groups in order, or nil.
func FirstPlayerHit(p *object.Player, groups ...[]*object.Entity) *object.Entity {
	pr := p.Rect()
	for _, group := range groups {
		for _, e := range group {
			if e.IsDestroyed() {
				continue
			}
			if pr.Intersects(e.Rect()) {
				return e
			}
		}
	}
	return nil
}
