package maths

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// NewLU 创建 n 阶稠密复数 LU 分解器
func NewLU(n int) (LU, error) {
	if n < 1 {
		return nil, errors.New("lu dimension must be positive")
	}
	return &luDense{
		n:    n,
		lu:   NewDenseMatrix(n, n),
		y:    NewDenseVector(n),
		perm: make([]int, n),
	}, nil
}

// luDense 部分主元 LU 分解 PA=LU
// L 与 U 共用一个矩阵: 严格下三角为 L 的消元因子(对角线为1, 不存储), 其余为 U。
type luDense struct {
	n    int
	lu   Matrix // 紧凑存储的 L/U
	y    Vector // 前代结果 Ly=Pb
	perm []int  // perm[i]: 分解后第 i 行来自原矩阵的行号
}

// Dim 矩阵维度
func (lu *luDense) Dim() int { return lu.n }

// Decompose 分解方阵, 输入矩阵不被修改
// 含 NaN/Inf 时返回 ErrNonFinite, 主元模值低于阈值时返回 ErrSingular。
func (lu *luDense) Decompose(matrix Matrix) error {
	if !matrix.IsSquare() {
		return errors.New("lu dense decompose: input must be square matrix")
	}
	if matrix.Rows() != lu.n {
		return errors.New("lu dense decompose: matrix dimension mismatch")
	}
	if !matrix.IsFinite() {
		return fmt.Errorf("lu dense decompose: %w", ErrNonFinite)
	}

	matrix.Copy(lu.lu)
	for i := range lu.perm {
		lu.perm[i] = i
	}
	tol := math.Max(AbsPivotTolerance, RelPivotTolerance*matrix.MaxAbs())

	for k := 0; k < lu.n; k++ {
		p, mag := lu.pivot(k)
		if mag < tol {
			return fmt.Errorf("lu dense decompose: pivot %d (|%.3g| < %.3g): %w", k, mag, tol, ErrSingular)
		}
		if p != k {
			// 整行交换, 已算出的消元因子随行移动
			lu.lu.SwapRows(k, p)
			lu.perm[k], lu.perm[p] = lu.perm[p], lu.perm[k]
		}
		lu.eliminate(k)
	}
	return nil
}

// pivot 第 k 列从第 k 行起模值最大的行
func (lu *luDense) pivot(k int) (row int, mag float64) {
	row, mag = k, cmplx.Abs(lu.lu.Get(k, k))
	for i := k + 1; i < lu.n; i++ {
		if v := cmplx.Abs(lu.lu.Get(i, k)); v > mag {
			row, mag = i, v
		}
	}
	return row, mag
}

// eliminate 用第 k 行消去其下各行的第 k 列
func (lu *luDense) eliminate(k int) {
	d := lu.lu.Get(k, k)
	for i := k + 1; i < lu.n; i++ {
		f := lu.lu.Get(i, k)
		if f == 0 {
			continue
		}
		f /= d
		lu.lu.Set(i, k, f)
		for j := k + 1; j < lu.n; j++ {
			lu.lu.Increment(i, j, -f*lu.lu.Get(k, j))
		}
	}
}

// SolveReuse 用已有分解求解 Ax=b, 结果写入 x
func (lu *luDense) SolveReuse(b, x Vector) error {
	if b.Length() != lu.n || x.Length() != lu.n {
		return errors.New("lu dense solve: vector dimension mismatch")
	}
	for i := 0; i < lu.n; i++ {
		sum := b.Get(lu.perm[i])
		for j := 0; j < i; j++ {
			sum -= lu.lu.Get(i, j) * lu.y.Get(j)
		}
		lu.y.Set(i, sum)
	}
	for i := lu.n - 1; i >= 0; i-- {
		sum := lu.y.Get(i)
		for j := i + 1; j < lu.n; j++ {
			sum -= lu.lu.Get(i, j) * x.Get(j)
		}
		d := lu.lu.Get(i, i)
		if d == 0 {
			return fmt.Errorf("lu dense solve: zero diagonal at %d: %w", i, ErrSingular)
		}
		x.Set(i, sum/d)
	}
	return nil
}

// Solve 一次性求解 Ax=b, 返回新的解向量
func Solve(a Matrix, b Vector) (Vector, error) {
	lu, err := NewLU(a.Rows())
	if err != nil {
		return nil, err
	}
	if err := lu.Decompose(a); err != nil {
		return nil, err
	}
	x := NewDenseVector(a.Rows())
	if err := lu.SolveReuse(b, x); err != nil {
		return nil, err
	}
	return x, nil
}
