package mna

import (
	"accircuit/graph"
	"accircuit/maths"
	"fmt"
)

// MNA 复数 MNA 方程 Ax=Z
//
//	A: (n+m)×(n+m) 导纳矩阵, n 为非地节点数, m 为电压源数
//	Z: 激励向量
//	X: 解向量, 前n项为节点电压, 后m项为电压源支路电流
type MNA struct {
	A                 maths.Matrix // 求解矩阵A
	Z                 maths.Vector // 已知向量Z
	X                 maths.Vector // 未知向量X (解), 求解成功前为nil
	NodesNum          int          // 电路节点数量（不含地节点）
	VoltageSourcesNum int          // 独立电压源数量
	Omega             float64      // 角频率 ω=2πf
}

// NewMNA 创建零初始化的MNA方程。
//
//	nodesNum: 电路节点数量（不含地节点）。
//	vsNum: 独立电压源数量。
func NewMNA(nodesNum, vsNum int) *MNA {
	n := nodesNum + vsNum // 总方程数量
	return &MNA{
		A:                 maths.NewDenseMatrix(n, n),
		Z:                 maths.NewDenseVector(n),
		NodesNum:          nodesNum,
		VoltageSourcesNum: vsNum,
	}
}

// ------------------------------ 矩阵/向量访问 ------------------------------

func (m *MNA) GetA() maths.Matrix { return m.A }
func (m *MNA) GetZ() maths.Vector { return m.Z }
func (m *MNA) GetX() maths.Vector { return m.X }

// Size 方程维度
func (m *MNA) Size() int { return m.NodesNum + m.VoltageSourcesNum }

// GetNodeVoltage 从解向量X中获取指定节点的电压, 地节点或未求解时返回0。
func (m *MNA) GetNodeVoltage(i graph.NodeIndex) complex128 {
	if m.X != nil && i > Gnd && int(i) < m.NodesNum {
		return m.X.Get(int(i))
	}
	return 0
}

// GetVoltageSourceCurrent 从解向量X中获取流经指定电压源的电流。
// 正方向为从正极经电源内部流向负极。
func (m *MNA) GetVoltageSourceCurrent(vs VoltageID) complex128 {
	if m.X != nil && vs > -1 && int(vs) < m.VoltageSourcesNum {
		return m.X.Get(m.NodesNum + int(vs))
	}
	return 0
}

// ------------------------------ MNA矩阵操作 ------------------------------

// StampMatrix 将一个值加到矩阵A的(i,j)元素上。地节点索引将被忽略。
func (m *MNA) StampMatrix(i, j graph.NodeIndex, value complex128) {
	if i > Gnd && j > Gnd {
		m.A.Increment(int(i), int(j), value)
	}
}

// StampMatrixSet 直接设置矩阵A的(i,j)元素的值。地节点索引将被忽略。
func (m *MNA) StampMatrixSet(i, j graph.NodeIndex, v complex128) {
	if i > Gnd && j > Gnd {
		m.A.Set(int(i), int(j), v)
	}
}

// StampRightSide 将一个值加到向量Z的第i个元素上。地节点索引将被忽略。
func (m *MNA) StampRightSide(i graph.NodeIndex, value complex128) {
	if i > Gnd {
		m.Z.Increment(int(i), value)
	}
}

// StampRightSideSet 直接设置向量Z的第i个元素的值。地节点索引将被忽略。
func (m *MNA) StampRightSideSet(i graph.NodeIndex, v complex128) {
	if i > Gnd {
		m.Z.Set(int(i), v)
	}
}

// ------------------------------ 无源元件加盖 ------------------------------

// StampImpedance 为阻抗元件添加MNA加盖。内部通过计算导纳 y=1/z 并调用 StampAdmittance 来实现。
func (m *MNA) StampImpedance(n1, n2 graph.NodeIndex, z complex128) {
	m.StampAdmittance(n1, n2, 1/z)
}

// StampAdmittance 为导纳元件添加MNA加盖，通过修改矩阵A的四个相关元素来反映其对电路的贡献。
// 一端接地时只修改另一端的对角元。
func (m *MNA) StampAdmittance(n1, n2 graph.NodeIndex, y complex128) {
	m.StampMatrix(n1, n1, y)
	m.StampMatrix(n2, n2, y)
	m.StampMatrix(n1, n2, -y)
	m.StampMatrix(n2, n1, -y)
}

// ------------------------------ 独立源加盖 ------------------------------

// StampCurrentSource 为独立电流源添加MNA加盖。
func (m *MNA) StampCurrentSource(n1, n2 graph.NodeIndex, i complex128) {
	m.StampRightSide(n1, -i)
	m.StampRightSide(n2, i)
}

// StampVoltageSource 为独立电压源添加MNA加盖。该操作占用第 n+vs 行/列的电流未知量。
func (m *MNA) StampVoltageSource(n1, n2 graph.NodeIndex, vs VoltageID, v complex128) {
	if vs < 0 || int(vs) >= m.VoltageSourcesNum {
		return
	}
	vsRow := graph.NodeIndex(m.NodesNum + int(vs))
	// KCL方程: I(vs) 对 n1/n2 节点的贡献
	m.StampMatrixSet(n1, vsRow, 1)
	m.StampMatrixSet(n2, vsRow, -1)
	// 电压源约束方程: V(n1) - V(n2) = v
	m.StampMatrixSet(vsRow, n1, 1)
	m.StampMatrixSet(vsRow, n2, -1)
	m.StampRightSideSet(vsRow, v)
}

// ------------------------------ 求解 ------------------------------

// Solve 求解线性系统, 成功后写入X。
// 矩阵奇异时返回包装了 maths.ErrSingular 的错误, X 保持为nil。
func (m *MNA) Solve() error {
	x, err := maths.Solve(m.A, m.Z)
	if err != nil {
		return fmt.Errorf("mna solve: %w", err)
	}
	m.X = x
	return nil
}

// String 返回MNA内部状态（矩阵A, 向量Z, X）的字符串表示。
func (m *MNA) String() string {
	x := "<unsolved>"
	if m.X != nil {
		x = m.X.String()
	}
	return fmt.Sprintf("MNA Matrix (rows=%d, cols=%d, ω=%g):\n%sZ vector:\n%s\nX vector:\n%s",
		m.A.Rows(), m.A.Cols(), m.Omega, m.A.String(), m.Z.String(), x)
}
