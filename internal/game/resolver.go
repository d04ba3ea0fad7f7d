package game

import "math"

// Catch records one object caught this frame and the effect applied.
type Catch struct {
	Kind   Kind   `json:"kind"`
	Effect Effect `json:"effect"`
}

// Resolve tests every object still in play against the pointer and applies
// the effect of each catch to the session. Caught objects and bananas already
// charged as missed are skipped. A nil pointer catches nothing.
func Resolve(s *Session, pointer *Vec2, rules Rules) []Catch {
	if pointer == nil {
		return nil
	}

	var catches []Catch
	for _, obj := range s.Objects {
		if obj.Caught || obj.Missed {
			continue
		}
		dist := math.Hypot(pointer.X-obj.Pos.X, pointer.Y-obj.Pos.Y)
		if dist >= obj.Radius+PointerRadius {
			continue
		}

		obj.Caught = true
		effect := rules.EffectOf(obj.Kind)
		apply(s, effect)
		catches = append(catches, Catch{Kind: obj.Kind, Effect: effect})
	}
	return catches
}

// ChargeMisses applies the banana-miss rule for n missed bananas.
func ChargeMisses(s *Session, n int, rules Rules) {
	if rules.MissCostsLife && n > 0 {
		s.Lives -= n
	}
}

func apply(s *Session, e Effect) {
	switch e {
	case EffectScore:
		s.Score++
	case EffectPenalty:
		s.Score = max(0, s.Score-1)
	case EffectLoseLife:
		s.Lives--
	case EffectLoseAll:
		s.Lives = 0
	}
}
