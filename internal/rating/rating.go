package rating

import (
	"errors"
	"fmt"
	"math"
)

type Score float64

const (
	Win  Score = 1
	Draw       = 0.5
	Loss       = 0
)

// Mode selects the update formulas. Everything else in the engine is
// shared between the two systems.
type Mode uint8

const (
	ModeClassic Mode = iota
	ModeGlicko
)

func (m Mode) String() string {
	if m == ModeGlicko {
		return "glicko"
	}
	return "classic"
}

var (
	ErrBadStartingRating    = errors.New("starting rating must be positive")
	ErrBadStartingDeviation = errors.New("starting deviation must be positive")
	ErrBadDeviationFloor    = errors.New("deviation floor must be positive and below the starting deviation")
	ErrBadApproxDeviation   = errors.New("approximate deviation must be between the floor and the starting deviation")
	ErrBadUncertainty       = errors.New("uncertainty periods must be positive")
	ErrBadScale             = errors.New("rating scale must be positive")
	ErrBadPenalty           = errors.New("penalty constants must not be negative")
)

// Constants hold every tunable of both rating systems.
type Constants struct {
	Mode Mode

	StartingRating     float64
	StartingDeviation  float64
	DeviationFloor     float64
	ApproxDeviation    float64
	UncertaintyPeriods int

	KFactor float64
	Scale   float64

	PenaltyRate   float64
	PenaltyGrowth float64
	PenaltyCutoff float64
	MaxPenalty    float64
	Bonus         float64
}

func Default() Constants {
	return Constants{
		Mode:               ModeClassic,
		StartingRating:     1500,
		StartingDeviation:  350,
		DeviationFloor:     50,
		ApproxDeviation:    60,
		UncertaintyPeriods: 10,
		KFactor:            20,
		Scale:              400,
		PenaltyCutoff:      1500 * 0.75,
		MaxPenalty:         20,
	}
}

func (c Constants) Validate() error {
	var err error
	if c.StartingRating <= 0 {
		err = errors.Join(err, ErrBadStartingRating)
	}
	if c.StartingDeviation <= 0 {
		err = errors.Join(err, ErrBadStartingDeviation)
	}
	if c.DeviationFloor <= 0 || c.DeviationFloor > c.StartingDeviation {
		err = errors.Join(err, ErrBadDeviationFloor)
	}
	if c.ApproxDeviation < c.DeviationFloor || c.ApproxDeviation > c.StartingDeviation {
		err = errors.Join(err, ErrBadApproxDeviation)
	}
	if c.UncertaintyPeriods <= 0 {
		err = errors.Join(err, ErrBadUncertainty)
	}
	if c.Scale <= 0 {
		err = errors.Join(err, ErrBadScale)
	}
	if c.PenaltyRate < 0 || c.PenaltyGrowth < 0 || c.MaxPenalty < 0 || c.PenaltyCutoff < 0 {
		err = errors.Join(err, ErrBadPenalty)
	}
	if err != nil {
		return fmt.Errorf("rating constants: %w", err)
	}
	return nil
}

// q is the glicko scale constant ln(10)/scale.
func (c Constants) q() float64 {
	return math.Ln10 / c.Scale
}

// growth is c^2 of the deviation growth formula, chosen so that the
// deviation of an idle player returns to the starting deviation after
// UncertaintyPeriods periods.
func (c Constants) growth() float64 {
	sd := c.StartingDeviation
	ad := c.ApproxDeviation
	return (sd*sd - ad*ad) / float64(c.UncertaintyPeriods)
}

// GWeight is the glicko g(RD) damping applied to an opponent with the
// given deviation. Classic mode weighs every opponent equally.
func (c Constants) GWeight(deviation float64) float64 {
	if c.Mode == ModeClassic {
		return 1
	}
	q := c.q()
	return 1 / math.Sqrt(1+3*q*q*deviation*deviation/(math.Pi*math.Pi))
}

// ExpectedScore is the expectation of a player at rating against an
// opponent at oppRating with deviation oppDeviation. The opponent's
// deviation, not the player's own, weighs the rating difference.
func (c Constants) ExpectedScore(rating, oppRating, oppDeviation float64) float64 {
	return 1 / (1 + math.Pow(10, c.GWeight(oppDeviation)*(oppRating-rating)/c.Scale))
}

// GrowDeviation returns the deviation after idlePeriods periods without
// play, bounded above by the starting deviation. Classic mode keeps
// the deviation frozen.
func (c Constants) GrowDeviation(deviation float64, idlePeriods int) float64 {
	if c.Mode == ModeClassic || idlePeriods <= 0 {
		return deviation
	}
	grown := math.Sqrt(deviation*deviation + c.growth()*float64(idlePeriods))
	return math.Min(grown, c.StartingDeviation)
}

// DecayPenalty returns the rating amount to subtract for a player idle
// for idlePeriods periods. The decay erodes only the portion of the
// rating above the cutoff and is capped by the maximum penalty.
func (c Constants) DecayPenalty(rating float64, idlePeriods int) float64 {
	if idlePeriods <= 0 {
		return 0
	}
	headroom := math.Max(rating-c.PenaltyCutoff, 0)
	decay := headroom * c.PenaltyRate * math.Exp(c.PenaltyGrowth*float64(idlePeriods-1))
	decay = math.Min(decay, headroom)
	if c.MaxPenalty > 0 {
		decay = math.Min(decay, c.MaxPenalty)
	}
	return decay
}

// GameResult is one game of the current period from the updated
// player's point of view.
type GameResult struct {
	OpponentRating    float64
	OpponentDeviation float64
	Score             Score
}

// Update computes the post-period rating and deviation of a player who
// played at least one game in the period. k is the player's K-factor,
// used in classic mode only. Inputs are the player's committed state
// from before the period.
func (c Constants) Update(rating, deviation, k float64, results []GameResult) (float64, float64) {
	var dSum, rSum float64
	for _, res := range results {
		g := c.GWeight(res.OpponentDeviation)
		e := c.ExpectedScore(rating, res.OpponentRating, res.OpponentDeviation)
		dSum += g * g * e * (1 - e)
		rSum += g * (float64(res.Score) - e)
	}

	if c.Mode == ModeClassic {
		return rating + k*rSum, deviation
	}

	q := c.q()
	d2inv := q * q * dSum
	// A period of games against maximally certain opponents can drive
	// d2inv to a degenerate value; treat that as no information gained.
	if math.IsNaN(d2inv) || math.IsInf(d2inv, 0) || d2inv < 0 {
		d2inv = 0
	}
	newDeviation := math.Max(1/math.Sqrt(1/(deviation*deviation)+d2inv), c.DeviationFloor)
	newRating := rating + q*newDeviation*newDeviation*rSum + c.Bonus
	return newRating, newDeviation
}
