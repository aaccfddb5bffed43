package maths

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// denseVector 稠密复数向量实现
type denseVector struct {
	data []complex128
}

// NewDenseVector 创建新的稠密向量
func NewDenseVector(length int) Vector {
	return &denseVector{data: make([]complex128, length)}
}

// NewDenseVectorWithData 从现有数据创建稠密向量（拷贝）
func NewDenseVectorWithData(data []complex128) Vector {
	v := &denseVector{data: make([]complex128, len(data))}
	copy(v.data, data)
	return v
}

// Length 向量长度
func (v *denseVector) Length() int { return len(v.data) }

// Get 获取指定位置的元素值
func (v *denseVector) Get(index int) complex128 { return v.data[index] }

// Set 设置指定位置的元素值
func (v *denseVector) Set(index int, value complex128) { v.data[index] = value }

// Increment 增量更新
func (v *denseVector) Increment(index int, value complex128) { v.data[index] += value }

// ToDense 转换为稠密切片
func (v *denseVector) ToDense() []complex128 {
	out := make([]complex128, len(v.data))
	copy(out, v.data)
	return out
}

// BuildFromDense 从稠密切片构建向量
func (v *denseVector) BuildFromDense(dense []complex128) {
	if len(dense) != len(v.data) {
		panic(fmt.Sprintf("vector dimension mismatch: got %d, want %d", len(dense), len(v.data)))
	}
	copy(v.data, dense)
}

// Zero 清空向量
func (v *denseVector) Zero() { clear(v.data) }

// Copy 将自身值复制到 a 向量
func (v *denseVector) Copy(a Vector) {
	if a.Length() != v.Length() {
		panic(fmt.Sprintf("vector dimension mismatch: source %d, target %d", v.Length(), a.Length()))
	}
	if target, ok := a.(*denseVector); ok {
		copy(target.data, v.data)
		return
	}
	for i, value := range v.data {
		a.Set(i, value)
	}
}

// MaxAbs 最大模值
func (v *denseVector) MaxAbs() (m float64) {
	for _, value := range v.data {
		m = math.Max(m, cmplx.Abs(value))
	}
	return m
}

// IsFinite 所有元素有限
func (v *denseVector) IsFinite() bool {
	for _, value := range v.data {
		if cmplx.IsNaN(value) || cmplx.IsInf(value) {
			return false
		}
	}
	return true
}

// String 格式化输出
func (v *denseVector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, value := range v.data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.6g", value)
	}
	b.WriteByte(']')
	return b.String()
}
