package m

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func dot(m, n mat.Matrix) *mat.Dense {
	r, _ := m.Dims()
	_, c := n.Dims()
	o := mat.NewDense(r, c, nil)
	o.Mul(m, n)
	return o
}

func apply(fn func(i, j int, v float64) float64, m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Apply(fn, m)
	return o
}

func scale(s float64, m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Scale(s, m)
	return o
}

func multiply(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.MulElem(m, n)
	return o
}

func add(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Add(m, n)
	return o
}

func subtract(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Sub(m, n)
	return o
}

// sumColumns collapses m into a 1×c row holding the sum of every column.
func sumColumns(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(1, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, m)
		o.Set(0, j, floats.Sum(col))
	}
	return o
}

// randomArray draws size values from Uniform[-1, 1). A nil src falls back
// to the package level source of golang.org/x/exp/rand.
func randomArray(size int, src rand.Source) []float64 {
	dist := distuv.Uniform{
		Min: -1,
		Max: 1,
		Src: src,
	}

	data := make([]float64, size)
	for i := 0; i < size; i++ {
		data[i] = dist.Rand()
	}
	return data
}

func randomDense(rows, cols int, src rand.Source) *mat.Dense {
	return mat.NewDense(rows, cols, randomArray(rows*cols, src))
}

// RowVector wraps data as a 1×len(data) matrix without copying.
func RowVector(data []float64) *mat.Dense {
	return mat.NewDense(1, len(data), data)
}

// Row copies the first row of a 1×n matrix into a fresh slice.
func Row(a mat.Matrix) []float64 {
	_, c := a.Dims()
	return mat.Row(make([]float64, c), 0, a)
}
