package maths

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// 主元阈值: 主元模值低于 max(AbsPivotTolerance, RelPivotTolerance*max|A|) 视为奇异
var (
	AbsPivotTolerance = 1e-16
	RelPivotTolerance = 1e-14
)

// 分解错误
var (
	ErrSingular  = errors.New("matrix is singular or nearly singular") // 奇异或接近奇异, 没有唯一解
	ErrNonFinite = errors.New("matrix has non-finite entries")         // 含 NaN/Inf, 主元阈值无意义
)

// Vector 复数向量接口定义
type Vector interface {
	// 基础属性方法
	Length() int    // 获取向量长度
	String() string // 格式化字符串输出

	// 数据访问方法
	Get(index int) complex128              // 获取指定索引元素值
	Set(index int, value complex128)       // 设置指定索引元素值
	Increment(index int, value complex128) // 增量更新元素（value累加）

	// 数据操作和转换方法
	ToDense() []complex128             // 转换为稠密切片（副本）
	BuildFromDense(dense []complex128) // 从稠密切片构建向量

	// 数据修改方法
	Zero()         // 清空向量为零向量
	Copy(a Vector) // 复制自身数据到目标向量a

	// 统计方法
	MaxAbs() float64 // 绝对值最大元素的模
	IsFinite() bool  // 所有元素都不是 NaN/Inf
}

// Matrix 复数方阵/矩阵接口定义
type Matrix interface {
	// 基础属性方法
	Rows() int      // 获取矩阵行数
	Cols() int      // 获取矩阵列数
	String() string // 格式化字符串输出
	IsSquare() bool // 判断是否为方阵（行数=列数）

	// 数据访问方法
	Get(row, col int) complex128              // 获取指定行列元素值
	Set(row, col int, value complex128)       // 设置指定行列元素值
	Increment(row, col int, value complex128) // 增量更新元素

	// 数据修改方法
	Zero()                   // 清空矩阵为零矩阵
	Copy(a Matrix)           // 复制自身数据到目标矩阵a
	SwapRows(row1, row2 int) // 交换两行

	// 数学运算方法
	MatrixVectorMultiply(x Vector) Vector // 矩阵向量乘法（返回A*x）

	// 统计方法
	MaxAbs() float64   // 绝对值最大元素的模
	NonZeroCount() int // 统计非零元素数量
	IsFinite() bool    // 所有元素都不是 NaN/Inf

	// CDense 底层 gonum 存储
	CDense() *mat.CDense
}

// LU 接口定义了 LU 分解和求解线性方程组的操作。
type LU interface {
	Dim() int                      // 矩阵维度
	Decompose(matrix Matrix) error // 对输入方阵执行LU分解（PA=LU）
	SolveReuse(b, x Vector) error  // 重用向量求解Ax=b（利用LU分解结果）
}
