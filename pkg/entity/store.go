package entity

// Store owns every enemy and bullet of the active galaxy.
// Slices keep insertion order, which is the order collisions are resolved in.
type Store struct {
	enemies       []*Enemy
	playerBullets []*Bullet
	enemyBullets  []*Bullet
	index         map[ID]interface{}
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{index: make(map[ID]interface{})}
}

// AddEnemy inserts an enemy
func (s *Store) AddEnemy(e *Enemy) {
	s.enemies = append(s.enemies, e)
	s.index[e.GetID()] = e
}

// AddBullet inserts a bullet into the player or enemy collection by owner
func (s *Store) AddBullet(b *Bullet) {
	if b.FromPlayer() {
		s.playerBullets = append(s.playerBullets, b)
	} else {
		s.enemyBullets = append(s.enemyBullets, b)
	}
	s.index[b.GetID()] = b
}

// Enemies returns the enemies in store order. Callers may mutate the
// enemies but not the slice.
func (s *Store) Enemies() []*Enemy {
	return s.enemies
}

// PlayerBullets returns player-owned bullets in store order
func (s *Store) PlayerBullets() []*Bullet {
	return s.playerBullets
}

// EnemyBullets returns enemy- and boss-owned bullets in store order
func (s *Store) EnemyBullets() []*Bullet {
	return s.enemyBullets
}

// Enemy looks up an enemy by id
func (s *Store) Enemy(id ID) (*Enemy, bool) {
	e, ok := s.index[id].(*Enemy)
	return e, ok
}

// Bullet looks up a bullet by id
func (s *Store) Bullet(id ID) (*Bullet, bool) {
	b, ok := s.index[id].(*Bullet)
	return b, ok
}

// AliveEnemies counts enemies that are still alive
func (s *Store) AliveEnemies() int {
	n := 0
	for _, e := range s.enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// Len returns the number of stored entities, alive or not
func (s *Store) Len() int {
	return len(s.enemies) + len(s.playerBullets) + len(s.enemyBullets)
}

// Prune removes dead enemies and dead or expired bullets and returns how
// many entities were removed.
func (s *Store) Prune(now float64) int {
	removed := 0

	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Alive {
			kept = append(kept, e)
			continue
		}
		delete(s.index, e.GetID())
		removed++
	}
	clearTail(s.enemies, len(kept))
	s.enemies = kept

	var n int
	s.playerBullets, n = s.pruneBullets(s.playerBullets, now)
	removed += n
	s.enemyBullets, n = s.pruneBullets(s.enemyBullets, now)
	removed += n

	return removed
}

func (s *Store) pruneBullets(bullets []*Bullet, now float64) ([]*Bullet, int) {
	removed := 0
	kept := bullets[:0]
	for _, b := range bullets {
		if b.Alive && !b.Expired(now) {
			kept = append(kept, b)
			continue
		}
		delete(s.index, b.GetID())
		removed++
	}
	clearTail(bullets, len(kept))
	return kept, removed
}

// clearTail nils out pointers past n so pruned entities can be collected
func clearTail[T any](items []*T, n int) {
	for i := n; i < len(items); i++ {
		items[i] = nil
	}
}

// Clear removes every enemy and bullet unconditionally
func (s *Store) Clear() {
	s.enemies = nil
	s.playerBullets = nil
	s.enemyBullets = nil
	s.index = make(map[ID]interface{})
}
