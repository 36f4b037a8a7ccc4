package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

// resolveAntibody performs one antibody action: a cooldown-gated special
// when ready (heal, salvo or mark) layered over the basic attack.
func (e *Engine) resolveAntibody(a *game.Antibody) {
	// Defensive: cellular repair when ready and an ally is wounded;
	// otherwise fall through to a normal attack.
	if a.Kind == game.AntibodyDefensive && a.SpecialCooldown == 0 {
		if ally := e.woundedAlly(); ally != nil {
			healed := ally.Heal(repairAmount)
			a.SpecialCooldown = repairCooldown
			e.addEntry(game.LogEntry{
				Message:   a.Name + " CELLULAR REPAIR: restores " + strconv.Itoa(healed) + " health to " + ally.Name,
				ActorID:   a.ID,
				TargetID:  ally.ID,
				Healing:   healed,
				IsSpecial: true,
				Kind:      game.ActionHeal,
			})
			return
		}
	}

	target := e.selectAntibodyTarget(a)
	if target == nil {
		return
	}

	factor := 1.0
	usedSpecial := false
	tags := make([]string, 0, 4)
	// The mark bonus applies to attacks resolved after the marking action,
	// so capture the flag before this unit could have set it.
	wasMarked := target.Marked

	switch a.Kind {
	case game.AntibodyOffensive:
		if a.SpecialCooldown == 0 {
			factor = salvoMultiplier
			usedSpecial = true
			a.SpecialCooldown = salvoCooldown
			tags = append(tags, "toxic salvo x2")
		}
	case game.AntibodyMarker:
		if a.SpecialCooldown == 0 {
			if !target.Marked {
				target.Marked = true
				e.addEntry(game.LogEntry{
					Message:   a.Name + " TARGET MARKING: " + target.Name + " is marked (+50% damage taken until defeated)",
					ActorID:   a.ID,
					TargetID:  target.ID,
					IsSpecial: true,
					Kind:      game.ActionSpecial,
				})
			}
			factor = markerAttackFactor
			usedSpecial = true
			a.SpecialCooldown = markerCooldown
			tags = append(tags, "marking boost")
		}
	}

	base := float64(a.Damage) * factor
	if e.memory != nil {
		if bonus := e.memory.DamageBonus(target.Species); bonus > 0 {
			base *= 1.0 + bonus
			tags = append(tags, "immune memory +"+strconv.Itoa(int(math.Round(bonus*100)))+"%")
		}
	}
	if wasMarked {
		base *= markMultiplier
		tags = append(tags, "marked x1.5")
	}

	amount := int(math.Round(base))
	shieldHeld := target.BiofilmActive
	if shieldHeld {
		tags = append(tags, "biofilm absorbed part of the hit")
	}
	dealt := target.ReceiveDamage(amount, a.AttackType)

	ctx := ""
	if len(tags) > 0 {
		ctx = " (" + strings.Join(tags, ", ") + ")"
	}
	e.addEntry(game.LogEntry{
		Message:   a.Name + " attacks " + target.Name + " for " + strconv.Itoa(dealt) + " damage" + ctx,
		ActorID:   a.ID,
		TargetID:  target.ID,
		Damage:    dealt,
		IsSpecial: usedSpecial,
		Kind:      game.ActionAttack,
	})

	// Independent per-hit break check after a shielded hit.
	if shieldHeld && target.BiofilmActive && e.rng.Float64() < shieldBreakChance {
		target.BiofilmActive = false
		e.addEntry(game.LogEntry{
			Message:   target.Name + "'s biofilm shield shatters under the assault",
			TargetID:  target.ID,
			IsSpecial: true,
			Kind:      game.ActionSpecial,
		})
	}

	if target.IsDefeated() {
		target.Marked = false
		e.addEntry(game.LogEntry{
			Message:  target.Name + " is neutralized!",
			ActorID:  a.ID,
			TargetID: target.ID,
			Kind:     game.ActionDeath,
		})
	}

	if !usedSpecial && a.SpecialCooldown > 0 {
		a.SpecialCooldown--
	}
}

// resolvePathogen performs one pathogen action: a probabilistic
// kind-specific trigger, then the attack, then any spore area damage.
func (e *Engine) resolvePathogen(p *game.Pathogen) {
	switch p.Kind {
	case game.PathogenVirus:
		if e.rng.Float64() < mutationChance {
			newType := p.Mutate()
			e.addEntry(game.LogEntry{
				Message:   p.Name + " RAPID MUTATION: shifts to " + string(newType) + " attacks and rebalances its resistances",
				ActorID:   p.ID,
				IsSpecial: true,
				Kind:      game.ActionSpecial,
			})
		}
	case game.PathogenBacteria:
		if !p.BiofilmActive && e.rng.Float64() < shieldChance {
			p.BiofilmActive = true
			e.addEntry(game.LogEntry{
				Message:   p.Name + " BIOFILM SHIELD: incoming damage reduced by " + strconv.Itoa(int(math.Round(p.BiofilmReduction*100))) + "%",
				ActorID:   p.ID,
				IsSpecial: true,
				Kind:      game.ActionSpecial,
			})
		}
	case game.PathogenFungus:
		if !p.SporesActive && e.rng.Float64() < sporeChance {
			p.SporesActive = true
			e.addEntry(game.LogEntry{
				Message:   p.Name + " CORROSIVE SPORES: releases a damaging spore cloud (+" + strconv.Itoa(p.SporeBonus) + " damage)",
				ActorID:   p.ID,
				IsSpecial: true,
				Kind:      game.ActionSpecial,
			})
		}
	}

	target := e.selectPathogenTarget()
	if target == nil {
		return
	}

	dmg := p.Damage
	boosted := p.Kind == game.PathogenFungus && p.SporesActive
	if boosted {
		dmg += p.SporeBonus
	}
	dealt := target.ReceiveDamage(dmg)

	msg := p.Name + " attacks " + target.Name + " for " + strconv.Itoa(dealt) + " damage"
	if boosted {
		msg += " (spore-laced)"
	}
	e.addEntry(game.LogEntry{
		Message:  msg,
		ActorID:  p.ID,
		TargetID: target.ID,
		Damage:   dealt,
		Kind:     game.ActionAttack,
	})
	if target.IsDefeated() {
		e.addEntry(game.LogEntry{
			Message:  target.Name + " is destroyed!",
			ActorID:  p.ID,
			TargetID: target.ID,
			Kind:     game.ActionDeath,
		})
	}

	// Area chip damage: once per turn, every other living enemy takes the
	// spore bonus as secondary damage, each hit logged on its own.
	if p.Kind == game.PathogenFungus && p.SporesActive {
		for _, ab := range e.antibodies {
			if ab == target || ab.IsDefeated() {
				continue
			}
			chip := ab.ReceiveDamage(p.SporeBonus)
			e.addEntry(game.LogEntry{
				Message:   p.Name + "'s spores burn " + ab.Name + " for " + strconv.Itoa(chip) + " damage",
				ActorID:   p.ID,
				TargetID:  ab.ID,
				Damage:    chip,
				IsSpecial: true,
				Kind:      game.ActionSpecial,
			})
			if ab.IsDefeated() {
				e.addEntry(game.LogEntry{
					Message:  ab.Name + " is destroyed!",
					ActorID:  p.ID,
					TargetID: ab.ID,
					Kind:     game.ActionDeath,
				})
			}
		}
	}
}
