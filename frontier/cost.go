package frontier

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// CostModel scores frontiers relative to the robot position:
//
//	cost = potential*minDistance*res - gain*size*res + weight*(dist(avoid, middle) + noise)*res
//
// Noise is drawn fresh for every scored frontier. The model is not safe for
// concurrent use because of its random source; the bias session is.
type CostModel struct {
	potentialScale float64
	gainScale      float64
	bias           BiasConfig
	session        *BiasSession
	noise          distuv.Normal
}

// NewCostModel creates cost model. A nil session gets a fresh one; a nil
// source draws noise from the global random generator.
func NewCostModel(cfg Config, session *BiasSession, src rand.Source) *CostModel {
	if session == nil {
		session = NewBiasSession()
	}
	return &CostModel{
		potentialScale: cfg.PotentialScale,
		gainScale:      cfg.GainScale,
		bias:           cfg.Bias,
		session:        session,
		noise: distuv.Normal{
			Mu:    cfg.Bias.NoiseMean,
			Sigma: cfg.Bias.NoiseStdDev,
			Src:   src,
		},
	}
}

// GetSession returns bias session used by the model
func (model *CostModel) GetSession() *BiasSession {
	return model.session
}

// Weight advances the bias latch for the robot position and returns the weight in effect
func (model *CostModel) Weight(robot Point) float64 {
	return model.session.Observe(euclideanDistance(model.bias.AvoidPoint, robot), model.bias)
}

// Score returns cost of frontier for robot position, lower is better
func (model *CostModel) Score(frontier *Frontier, robot Point, resolution float64) float64 {
	return model.score(frontier, model.Weight(robot), resolution)
}

func (model *CostModel) score(frontier *Frontier, weight, resolution float64) float64 {
	potential := 0.0
	if model.potentialScale != 0 {
		potential = model.potentialScale * frontier.MinDistance * resolution
	}
	gain := model.gainScale * float64(frontier.Size) * resolution
	avoidDistance := euclideanDistance(model.bias.AvoidPoint, frontier.Middle) + model.noise.Rand()
	return potential - gain + weight*avoidDistance*resolution
}

// Rank assigns cost to every frontier and sorts them ascending by cost.
// Order of equal costs is unspecified.
func (model *CostModel) Rank(frontiers []Frontier, robot Point, resolution float64) {
	for i := range frontiers {
		frontiers[i].Cost = model.Score(&frontiers[i], robot, resolution)
	}
	sort.Slice(frontiers, func(i, j int) bool {
		return frontiers[i].Cost < frontiers[j].Cost
	})
}
