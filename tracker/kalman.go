package tracker

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// State is the Kalman filter state of a track: mean is the 8 dimensional
// vector (cx, cy, a, h, vx, vy, va, vh) and cov its covariance
type State struct {
	mean *mat.VecDense
	cov  *mat.Dense
}

// KalmanFilter is a constant velocity filter over box center, aspect ratio
// and height
type KalmanFilter struct {
	stdWeightPosition float64
	stdWeightVelocity float64
	motionMat         *mat.Dense
	updateMat         *mat.Dense
}

// NewKalmanFilter returns a KalmanFilter whose process noise scales with the
// box height by the given weights
func NewKalmanFilter(stdWeightPosition, stdWeightVelocity float64) *KalmanFilter {

	const ndim = 4

	// identity plus unit time step from velocity into position
	motionMat := mat.NewDense(2*ndim, 2*ndim, nil)

	for i := 0; i < 2*ndim; i++ {
		motionMat.Set(i, i, 1)
	}

	for i := 0; i < ndim; i++ {
		motionMat.Set(i, ndim+i, 1)
	}

	// picks the position half of the state
	updateMat := mat.NewDense(ndim, 2*ndim, nil)

	for i := 0; i < ndim; i++ {
		updateMat.Set(i, i, 1)
	}

	return &KalmanFilter{
		stdWeightPosition: stdWeightPosition,
		stdWeightVelocity: stdWeightVelocity,
		motionMat:         motionMat,
		updateMat:         updateMat,
	}
}

// diag returns a square matrix with the squares of std on its diagonal
func diag(std []float64) *mat.Dense {

	d := mat.NewDense(len(std), len(std), nil)

	for i, v := range std {
		d.Set(i, i, v*v)
	}

	return d
}

// Initiate creates a track state from an unassociated measurement with zero
// velocity
func (kf *KalmanFilter) Initiate(m Xyah) State {

	mean := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		mean.SetVec(i, m[i])
	}

	h := m[3]

	cov := diag([]float64{
		2 * kf.stdWeightPosition * h,
		2 * kf.stdWeightPosition * h,
		1e-2,
		2 * kf.stdWeightPosition * h,
		10 * kf.stdWeightVelocity * h,
		10 * kf.stdWeightVelocity * h,
		1e-5,
		10 * kf.stdWeightVelocity * h,
	})

	return State{mean: mean, cov: cov}
}

// Predict advances the state one time step
func (kf *KalmanFilter) Predict(s *State) {

	h := s.mean.AtVec(3)

	motionCov := diag([]float64{
		kf.stdWeightPosition * h,
		kf.stdWeightPosition * h,
		1e-2,
		kf.stdWeightPosition * h,
		kf.stdWeightVelocity * h,
		kf.stdWeightVelocity * h,
		1e-5,
		kf.stdWeightVelocity * h,
	})

	var mean mat.VecDense
	mean.MulVec(kf.motionMat, s.mean)

	var cov mat.Dense
	cov.Product(kf.motionMat, s.cov, kf.motionMat.T())
	cov.Add(&cov, motionCov)

	s.mean = &mean
	s.cov = &cov
}

// project maps the state into measurement space
func (kf *KalmanFilter) project(s *State) (*mat.VecDense, *mat.SymDense) {

	h := s.mean.AtVec(3)
	std := []float64{
		kf.stdWeightPosition * h,
		kf.stdWeightPosition * h,
		1e-1,
		kf.stdWeightPosition * h,
	}

	var mean mat.VecDense
	mean.MulVec(kf.updateMat, s.mean)

	var projected mat.Dense
	projected.Product(kf.updateMat, s.cov, kf.updateMat.T())

	cov := mat.NewSymDense(4, nil)

	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			// average to remove asymmetry from rounding
			cov.SetSym(i, j, (projected.At(i, j)+projected.At(j, i))/2)
		}

		cov.SetSym(i, i, cov.At(i, i)+std[i]*std[i])
	}

	return &mean, cov
}

// Update corrects the state with an associated measurement
func (kf *KalmanFilter) Update(s *State, m Xyah) error {

	projMean, projCov := kf.project(s)

	var chol mat.Cholesky

	if ok := chol.Factorize(projCov); !ok {
		return errors.New("failed to factorize projected covariance")
	}

	// gain = P H^T S^-1, solved as S gain^T = H P^T
	var b mat.Dense
	b.Mul(kf.updateMat, s.cov.T())

	var gainT mat.Dense

	if err := chol.SolveTo(&gainT, &b); err != nil {
		return fmt.Errorf("failed to compute kalman gain: %w", err)
	}

	innovation := mat.NewVecDense(4, nil)

	for i := 0; i < 4; i++ {
		innovation.SetVec(i, m[i]-projMean.AtVec(i))
	}

	var correction mat.VecDense
	correction.MulVec(gainT.T(), innovation)

	var mean mat.VecDense
	mean.AddVec(s.mean, &correction)

	var shrink mat.Dense
	shrink.Product(gainT.T(), projCov, &gainT)

	var cov mat.Dense
	cov.Sub(s.cov, &shrink)

	s.mean = &mean
	s.cov = &cov

	return nil
}

// rect returns the box described by the state's position
func (s *State) rect() Rect {
	return RectFromXyah(Xyah{
		s.mean.AtVec(0), s.mean.AtVec(1), s.mean.AtVec(2), s.mean.AtVec(3),
	})
}
