package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/obj"
)

// frame carries values handed from one phase of a step to the next.
type frame struct {
	intent   Intent
	scroll   cp.Vector
	complete bool
}

func (s *Session) newScheduler() *ecs.Scheduler[*Session] {
	return ecs.NewScheduler[*Session](
		ecs.SystemFunc[*Session]((*Session).movePlayer),
		ecs.SystemFunc[*Session]((*Session).scrollWorld),
		ecs.SystemFunc[*Session]((*Session).updateEnemies),
		ecs.SystemFunc[*Session]((*Session).updatePlayer),
		ecs.SystemFunc[*Session]((*Session).fireBow),
		ecs.SystemFunc[*Session]((*Session).updateArrows),
		ecs.SystemFunc[*Session]((*Session).updateTexts),
		ecs.SystemFunc[*Session]((*Session).updateFireballs),
		ecs.SystemFunc[*Session]((*Session).updateItems),
		ecs.SystemFunc[*Session]((*Session).updateSplatters),
		ecs.SystemFunc[*Session](func(s *Session) { s.level.flush() }),
	)
}

func (s *Session) movePlayer() {
	dx, dy := s.frame.intent.Axis()
	speed := s.tables.Game.PlayerSpeed
	lvl := s.level
	s.frame.scroll, s.frame.complete = lvl.Player.Move(dx*speed, dy*speed, lvl.World.Obstacles, lvl.World.ExitRect())
}

func (s *Session) scrollWorld() {
	s.level.World.Update(s.frame.scroll)
}

func (s *Session) updateEnemies() {
	lvl := s.level
	fireball := s.tables.Weapons.Fireball
	lvl.Enemies.Each(func(id ecs.Entity, e *obj.Enemy) {
		res := e.AI(lvl.Player.Target(), lvl.World.Obstacles, s.frame.scroll, fireball)
		if res.Melee > 0 {
			lvl.Player.TakeHit(res.Melee)
		}
		if res.Projectile != nil {
			lvl.Fireballs.Spawn(res.Projectile)
		}
		if e.Alive() {
			e.Update()
			return
		}
		s.enemyDied(id, e)
	})
}

func (s *Session) enemyDied(id ecs.Entity, e *obj.Enemy) {
	lvl := s.level
	g := s.tables.Game
	item, dropped := obj.EnemyDeath(&lvl.Enemies, id, s.dropper, s.tables.Items, g.AnimationTicks)
	if dropped {
		lvl.Items.Spawn(item)
	}
	lvl.Splatters.Spawn(obj.NewSplatter(e.Center(), g.SplatterKinds, s.rng))
	s.cues.Push(CueEnemyDied)
	s.logger.Debug().Str("mob", e.Name).Bool("boss", e.Boss()).Bool("drop", dropped).Msg("enemy died")
}

func (s *Session) updatePlayer() {
	s.level.Player.Update()
}

func (s *Session) fireBow() {
	lvl := s.level
	if arrow := lvl.Bow.Update(lvl.Player, s.frame.intent.Fire, s.frame.intent.Aim); arrow != nil {
		lvl.Arrows.Spawn(arrow)
		s.cues.Push(CueShotFired)
	}
}

func (s *Session) updateArrows() {
	lvl := s.level
	enemies := lvl.Enemies.Values()
	targets := make([]component.Damageable, 0, len(enemies))
	for _, e := range enemies {
		targets = append(targets, e)
	}
	ttl := s.tables.Game.DamageTextTTL
	lvl.Arrows.Each(func(id ecs.Entity, a *obj.Projectile) {
		hit, ok := a.Update(s.frame.scroll, lvl.World.Obstacles, targets, s.rng)
		if ok {
			pos := cp.Vector{X: hit.Pos.Center().X, Y: hit.Pos.Top()}
			lvl.Texts.Spawn(obj.NewDamageText(pos, hit.Damage, ttl))
			s.cues.Push(CueHitLanded)
		}
		if !a.Active {
			lvl.Arrows.Kill(id)
		}
	})
}

func (s *Session) updateTexts() {
	lvl := s.level
	lvl.Texts.Each(func(id ecs.Entity, d *obj.DamageText) {
		if !d.Update(s.frame.scroll) {
			lvl.Texts.Kill(id)
		}
	})
}

func (s *Session) updateFireballs() {
	lvl := s.level
	targets := []component.Damageable{lvl.Player}
	lvl.Fireballs.Each(func(id ecs.Entity, f *obj.Projectile) {
		f.Update(s.frame.scroll, lvl.World.Obstacles, targets, s.rng)
		if !f.Active {
			lvl.Fireballs.Kill(id)
		}
	})
}

func (s *Session) updateItems() {
	lvl := s.level
	lvl.ScoreCoin.Update(s.frame.scroll, lvl.Player)
	lvl.Items.Each(func(id ecs.Entity, it *obj.Item) {
		if !it.Update(s.frame.scroll, lvl.Player) {
			return
		}
		if it.Kind == obj.ItemPotion {
			s.cues.Push(CuePotionUsed)
		} else {
			s.cues.Push(CueCoinCollected)
		}
		lvl.Items.Kill(id)
	})
}

func (s *Session) updateSplatters() {
	s.level.Splatters.Each(func(_ ecs.Entity, sp *obj.Splatter) {
		sp.Update(s.frame.scroll)
	})
}

// combatHandler turns player health events into cues.
func (s *Session) combatHandler(evt component.CombatEvent) {
	switch evt.Type {
	case component.EventDamageApplied:
		s.cues.Push(CuePlayerHurt)
	case component.EventDeath:
		s.cues.Push(CuePlayerDied)
		s.logger.Info().Int("level", s.level.Number).Int("score", s.level.Player.Score).Msg("player died")
	}
}
