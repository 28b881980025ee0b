package growth

// spawnAt creates a child branch at the parent's position.
func (t *Tree) spawnAt(parent *Branch, kind Kind, life, dripCooldown int) *Branch {
	child := newBranch(kind, parent.X, parent.Y, life, parent.Multiplier,
		t.params.Multiplier, dripCooldown, t.stream.Seed())
	t.add(child)
	return child
}

// spawn runs the spawn policy for b. The rules form a priority chain: the first
// matching rule is the only one applied this tick.
func (t *Tree) spawn(b *Branch) {
	m := b.Multiplier

	switch {
	case b.Life < 6:
		// final leaf burst before death
		t.spawnAt(b, Dead, b.Life, b.Life/4)

	case b.Kind.IsShoot():
		if b.Life < 7+m/5 {
			t.spawnAt(b, Dying, b.Life+1, (b.Life+1)/4)
		} else if b.DripCooldown <= 0 && t.stream.Intn(3) == 0 {
			t.spawnAt(b, Dying, 5, (m*2)/3)
			b.DripCooldown = 32 + m
		}

	case b.Kind == Trunk && b.Life < m+2:
		t.spawnAt(b, Dying, b.Life, b.Life/4)

	case b.Kind == Trunk:
		// evaluating branching costs a healthy trunk one life
		b.Life--
		if m == 0 {
			return
		}
		if !isYoung(b.Age, b.TotalLife) {
			t.trySplit(b)
		}
		t.tryShoot(b)
	}
}

// splitThreshold is the die size for a trunk split; more trunks and more of the
// parent's life consumed make a split less likely.
func (t *Tree) splitThreshold(b *Branch) int {
	threshold := (24 - b.Multiplier) + 2*t.counters.Trunks
	ratio := float64(b.Age) / float64(b.TotalLife)

	switch {
	case ratio < 0.1:
		threshold = threshold * 2 / 7
	case ratio < 0.4:
		threshold = threshold * 3 / 7
	default:
		threshold = threshold * 5 / 7
	}
	return max(threshold, 1)
}

// remainingShare is int(5 * remaining life share), used for split cooldown and cost.
func remainingShare(b *Branch) int {
	return int(5 * float64(b.TotalLife-b.Age) / float64(b.TotalLife))
}

func (t *Tree) trySplit(b *Branch) {
	threshold := t.splitThreshold(b)
	if t.counters.SplitCooldown >= 0 || t.stream.Intn(threshold) != 0 {
		return
	}

	m := b.Multiplier
	t.counters.SplitCooldown = 2 + ((22-m)*3)/4 + remainingShare(b)
	t.counters.Trunks++
	b.ShootCooldown = (25 - m) / 4

	life := b.Life - t.stream.Intn(6)
	t.spawnAt(b, Trunk, life, b.Life/4)

	b.Life -= remainingShare(b)
}

// shootDice is the die size for sprouting a shoot, by growth phase and, after the
// young phase, by how much of the trunk's life remains.
func shootDice(age, totalLife, multiplier int) int {
	var dice int
	if isYoung(age, totalLife) {
		dice = 12 - multiplier/10
	} else {
		remaining := totalLife - age
		switch {
		case remaining < totalLife/4:
			dice = 15 - multiplier/4
		case remaining < totalLife/2:
			dice = 10 - multiplier/6
		default:
			dice = 5 - multiplier/10
		}
	}
	return max(dice, 1)
}

func (t *Tree) tryShoot(b *Branch) {
	m := b.Multiplier
	if b.ShootCooldown > 0 || t.stream.Intn(shootDice(b.Age, b.TotalLife, m)) != 0 {
		return
	}

	b.ShootCooldown = t.counters.Trunks + (25-m)/6
	life := (b.Life*3)/4 + t.stream.Intn(m) - 2

	kind := ShootLeft
	if t.counters.nextRight {
		kind = ShootRight
	}
	t.counters.nextRight = !t.counters.nextRight
	t.counters.Shoots++

	t.spawnAt(b, kind, life, life/4)

	b.Life -= t.stream.Intn(3)
}
