package maths

import (
	"math"
	"math/cmplx"
)

// Rect 由模值和角度(度)构造相量
func Rect(mag, deg float64) complex128 {
	return cmplx.Rect(mag, deg*math.Pi/180)
}

// Degrees 复数辐角(度), 范围 (-180°, 180°]
// 落在坐标轴上的值直接返回精确角度, 避免弧度换算引入的舍入误差。
func Degrees(z complex128) float64 {
	re, im := real(z), imag(z)
	switch {
	case im == 0 && re >= 0:
		return 0
	case im == 0:
		return 180
	case re == 0 && im > 0:
		return 90
	case re == 0:
		return -90
	}
	deg := cmplx.Phase(z) * 180 / math.Pi
	if deg <= -180 {
		deg += 360
	}
	return deg
}

// Polar 模值和角度(度)
func Polar(z complex128) (mag, deg float64) {
	return cmplx.Abs(z), Degrees(z)
}
