package maths

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// denseMatrix 稠密复数矩阵, 底层使用 gonum CDense 行优先存储
type denseMatrix struct {
	m    *mat.CDense
	data []complex128 // 与 m 共享的底层切片
}

// NewDenseMatrix 创建指定维度的零矩阵
func NewDenseMatrix(rows, cols int) Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid matrix dimensions %dx%d", rows, cols))
	}
	data := make([]complex128, rows*cols)
	return &denseMatrix{m: mat.NewCDense(rows, cols, data), data: data}
}

// NewDenseMatrixFrom 从二维切片构建矩阵
func NewDenseMatrixFrom(dense [][]complex128) Matrix {
	m := NewDenseMatrix(len(dense), len(dense[0]))
	for i, row := range dense {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}

// CDense 底层 gonum 存储
func (m *denseMatrix) CDense() *mat.CDense { return m.m }

// Rows 行数
func (m *denseMatrix) Rows() int {
	r, _ := m.m.Dims()
	return r
}

// Cols 列数
func (m *denseMatrix) Cols() int {
	_, c := m.m.Dims()
	return c
}

// IsSquare 判断是否为方阵
func (m *denseMatrix) IsSquare() bool {
	r, c := m.m.Dims()
	return r == c
}

// Get 获取元素（越界panic）
func (m *denseMatrix) Get(row, col int) complex128 { return m.m.At(row, col) }

// Set 设置元素（越界panic）
func (m *denseMatrix) Set(row, col int, value complex128) { m.m.Set(row, col, value) }

// Increment 增量更新元素
func (m *denseMatrix) Increment(row, col int, value complex128) {
	m.m.Set(row, col, m.m.At(row, col)+value)
}

// Zero 清空矩阵
func (m *denseMatrix) Zero() { clear(m.data) }

// Copy 复制自身数据到目标矩阵
func (m *denseMatrix) Copy(a Matrix) {
	if a.Rows() != m.Rows() || a.Cols() != m.Cols() {
		panic(fmt.Sprintf("dimension mismatch: source %dx%d, target %dx%d", m.Rows(), m.Cols(), a.Rows(), a.Cols()))
	}
	a.CDense().Copy(m.m)
}

// SwapRows 交换两行
func (m *denseMatrix) SwapRows(row1, row2 int) {
	if row1 == row2 {
		return
	}
	cols := m.Cols()
	r1 := m.data[row1*cols : (row1+1)*cols]
	r2 := m.data[row2*cols : (row2+1)*cols]
	for j := range r1 {
		r1[j], r2[j] = r2[j], r1[j]
	}
}

// MatrixVectorMultiply 矩阵向量乘法（A*x，返回新向量）
func (m *denseMatrix) MatrixVectorMultiply(x Vector) Vector {
	rows, cols := m.m.Dims()
	if x.Length() != cols {
		panic(fmt.Sprintf("vector dimension mismatch: x length=%d, matrix cols=%d", x.Length(), cols))
	}
	result := NewDenseVector(rows)
	for i := 0; i < rows; i++ {
		var sum complex128
		for j := 0; j < cols; j++ {
			sum += m.m.At(i, j) * x.Get(j)
		}
		result.Set(i, sum)
	}
	return result
}

// MaxAbs 最大模值
func (m *denseMatrix) MaxAbs() (mx float64) {
	for _, v := range m.data {
		mx = math.Max(mx, cmplx.Abs(v))
	}
	return mx
}

// IsFinite 所有元素有限
func (m *denseMatrix) IsFinite() bool {
	for _, v := range m.data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// NonZeroCount 统计非零元素数量
func (m *denseMatrix) NonZeroCount() (n int) {
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// String 格式化输出矩阵
func (m *denseMatrix) String() string {
	var b strings.Builder
	rows, cols := m.m.Dims()
	for i := 0; i < rows; i++ {
		b.WriteByte('[')
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.4g", m.m.At(i, j))
		}
		b.WriteString("]\n")
	}
	return b.String()
}
