package scoring

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/shopspring/decimal"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// rewardCostLimit bounds the evaluation cost of a reward expression
const rewardCostLimit = 10_000

// RewardInputs are the variables visible to a reward formula
type RewardInputs struct {
	Base    decimal.Decimal
	Q       decimal.Decimal
	I       decimal.Decimal
	K       decimal.Decimal
	Light   float64
	Pillars domain.PillarValues
}

// rewardEnv declares the variables of a CEL reward expression
func rewardEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("base", cel.DoubleType),
		cel.Variable("q", cel.DoubleType),
		cel.Variable("i", cel.DoubleType),
		cel.Variable("k", cel.DoubleType),
		cel.Variable("light", cel.DoubleType),
		cel.Variable("pillars", cel.MapType(cel.StringType, cel.DoubleType)),
	)
}

// CompileRewardExpression type-checks a CEL reward expression. It must evaluate to a double.
func CompileRewardExpression(expr string) (cel.Program, error) {
	env, err := rewardEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile check failed: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.DoubleType) {
		return nil, fmt.Errorf("reward expression must return double, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast, cel.CostLimit(rewardCostLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}
	return prg, nil
}

// formulas caches compiled reward programs by expression
type formulas struct {
	mu       sync.Mutex
	programs map[string]cel.Program
}

func (f *formulas) program(expr string) (cel.Program, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if prg, ok := f.programs[expr]; ok {
		return prg, nil
	}
	prg, err := CompileRewardExpression(expr)
	if err != nil {
		return nil, err
	}
	if f.programs == nil {
		f.programs = make(map[string]cel.Program)
	}
	f.programs[expr] = prg
	return prg, nil
}

// rawReward computes the untruncated, unclamped reward of a policy
func (f *formulas) rawReward(policy *domain.Policy, in RewardInputs) (decimal.Decimal, error) {
	switch policy.RewardFormula {
	case domain.RewardFormulaPPLPv1:
		return in.Base.Mul(in.Q).Mul(in.I).Mul(in.K), nil
	case domain.RewardFormulaCEL:
		prg, err := f.program(policy.RewardExpression)
		if err != nil {
			return decimal.Zero, &domain.PolicyError{Version: policy.Version, Reason: err.Error()}
		}
		return evalReward(prg, in)
	}
	return decimal.Zero, &domain.PolicyError{
		Version: policy.Version,
		Reason:  fmt.Sprintf("unknown reward formula %q", policy.RewardFormula),
	}
}

func evalReward(prg cel.Program, in RewardInputs) (decimal.Decimal, error) {
	out, _, err := prg.Eval(map[string]any{
		"base":  in.Base.InexactFloat64(),
		"q":     in.Q.InexactFloat64(),
		"i":     in.I.InexactFloat64(),
		"k":     in.K.InexactFloat64(),
		"light": in.Light,
		"pillars": map[string]float64{
			string(domain.PillarService):      in.Pillars.S,
			string(domain.PillarTruth):        in.Pillars.T,
			string(domain.PillarHealing):      in.Pillars.H,
			string(domain.PillarContribution): in.Pillars.C,
			string(domain.PillarUnity):        in.Pillars.U,
		},
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("CEL evaluation failed: %w", err)
	}

	d, ok := out.(types.Double)
	if !ok {
		return decimal.Zero, fmt.Errorf("reward expression returned %s, want double", out.Type())
	}
	v := float64(d)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("reward expression returned %v", v)
	}
	if v < 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(v), nil
}
