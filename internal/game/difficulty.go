package game

// Effect is what catching an object does to the session.
type Effect int

const (
	EffectScore    Effect = iota // score += 1
	EffectPenalty                // score -= 1, floored at 0
	EffectLoseLife               // lives -= 1
	EffectLoseAll                // lives = 0
)

func (e Effect) String() string {
	switch e {
	case EffectScore:
		return "score"
	case EffectPenalty:
		return "penalty"
	case EffectLoseLife:
		return "lose_life"
	case EffectLoseAll:
		return "lose_all"
	default:
		return "unknown"
	}
}

// Rules are the loss rules of one difficulty.
type Rules struct {
	Coconut Effect
	Bomb    Effect
	// MissCostsLife charges a life for each banana reaching the bottom uncaught.
	MissCostsLife bool
}

// EffectOf returns the effect of catching an object of kind k.
func (r Rules) EffectOf(k Kind) Effect {
	switch k {
	case Coconut:
		return r.Coconut
	case Bomb:
		return r.Bomb
	default:
		return EffectScore
	}
}

// Params are the per-frame tuning values derived from score and difficulty.
type Params struct {
	Speed         float64
	SpawnInterval int
	Rules         Rules
}

// RulesFor returns the loss rules of d. An unset difficulty plays like Easy.
func RulesFor(d Difficulty) Rules {
	switch d {
	case Medium:
		return Rules{Coconut: EffectLoseLife, Bomb: EffectLoseAll}
	case Hard:
		return Rules{Coconut: EffectLoseAll, Bomb: EffectLoseAll, MissCostsLife: true}
	default:
		return Rules{Coconut: EffectPenalty, Bomb: EffectLoseLife}
	}
}

// Tune computes speed and spawn interval from the score. Both grow harder
// monotonically; the spawn interval never drops below MinSpawnInterval.
func Tune(score int, d Difficulty) Params {
	if score < 0 {
		score = 0
	}
	return Params{
		Speed:         float64(BaseSpeed + score/SpeedStep),
		SpawnInterval: max(MinSpawnInterval, BaseSpawnInterval-score/SpawnStep),
		Rules:         RulesFor(d),
	}
}
