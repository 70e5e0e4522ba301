// Package pipeline turns a photo of an arithmetic expression into a numeric
// result in two stages: transcription through a vision engine, then
// evaluation (local parser by default, model-delegated when configured).
//
// Both stages are total at the boundary: Extract, Evaluate and Solve never
// panic and never return a Go error to the caller; every failure is a string
// beginning with "ERROR:". The caller distinguishes success from failure by
// prefix only.
package pipeline

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"snapcalc/internal/calc"
	"snapcalc/internal/vision"
)

type Solver struct {
	// RemoteEval delegates arithmetic to the model instead of the local
	// parser. Off by default.
	RemoteEval bool
}

// Extract transcribes the expression on the image and sanitizes it into the
// canonical charset [0-9.+\-*/()\s].
func (s *Solver) Extract(ctx context.Context, eng vision.Engine, image []byte, mime string) string {
	expr, err := s.extract(ctx, eng, image, mime)
	if err != nil {
		return Tagged(err)
	}
	return expr
}

func (s *Solver) extract(ctx context.Context, eng vision.Engine, image []byte, mime string) (string, error) {
	raw, err := eng.Transcribe(ctx, image, mime)
	if err != nil {
		log.Printf("extract: %s transcribe failed: %v", eng.Name(), err)
		return "", failExtractComm
	}
	txt := normalizeTranscript(raw)
	if looksLikeExpression(txt) {
		return Sanitize(txt), nil
	}
	if IsTagged(txt) {
		return "", fail(txt)
	}
	return "", failUnrecognized
}

// Evaluate computes the numeric value of an expression string.
func (s *Solver) Evaluate(ctx context.Context, eng vision.Engine, expr string) string {
	var (
		res string
		err error
	)
	if s.RemoteEval {
		res, err = s.evaluateRemote(ctx, eng, expr)
	} else {
		res, err = evaluateLocal(expr)
	}
	if err != nil {
		return Tagged(err)
	}
	return res
}

// Solve runs both stages. The evaluator is only invoked when extraction
// succeeded; on an extraction failure the tagged message comes back as the
// expression and the result is empty.
func (s *Solver) Solve(ctx context.Context, eng vision.Engine, image []byte, mime string) (string, string) {
	expr := s.Extract(ctx, eng, image, mime)
	if IsTagged(expr) {
		return expr, ""
	}
	return expr, s.Evaluate(ctx, eng, expr)
}

func evaluateLocal(expr string) (string, error) {
	if !charsetRe.MatchString(expr) {
		return "", failInvalidChars
	}
	// Adjacency is checked with whitespace squeezed out so "3+ +4" is caught
	// too, but the original string goes to the parser: collapsing digits
	// across spaces ("1 2+3") must stay a syntax error, not become 15.
	if doubleOpRe.MatchString(spaceRunRe.ReplaceAllString(expr, "")) {
		return "", failOperatorSeq
	}
	v, err := calc.Eval(expr)
	switch {
	case errors.Is(err, calc.ErrDivideByZero) || errors.Is(err, calc.ErrNotFinite):
		return "", failCalcNumber
	case err != nil:
		return "", failMalformed
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

func (s *Solver) evaluateRemote(ctx context.Context, eng vision.Engine, expr string) (string, error) {
	raw, err := eng.Compute(ctx, expr)
	if err != nil {
		log.Printf("evaluate: %s compute failed: %v", eng.Name(), err)
		return "", failComputeComm
	}
	txt := strings.TrimSpace(raw)
	if v, perr := strconv.ParseFloat(txt, 64); perr == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		// Verbatim, not reformatted: the model's own rendering stands.
		return txt, nil
	}
	if IsTagged(txt) {
		return "", fail(txt)
	}
	return "", failNumericFormat
}
