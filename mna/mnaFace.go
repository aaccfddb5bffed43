package mna

import (
	"accircuit/graph"
	"accircuit/maths"
)

// VoltageID 电压源编号, 用于在MNA方程中定位其对应的电流未知量。
type VoltageID int

// Gnd 表示电路的接地节点，其电位为零。
const Gnd = graph.Gnd

// Stamper 定义了构建复数 MNA 方程（Ax=Z）所需的加盖操作。
// 所有操作都是可交换的累加, 元件的加盖顺序不影响结果。
type Stamper interface {
	// GetA 返回MNA方程 (Ax=Z) 中的矩阵A。
	GetA() maths.Matrix

	// GetZ 返回MNA方程 (Ax=Z) 中的已知向量Z。
	GetZ() maths.Vector

	// StampMatrix 将一个值加到矩阵A的(i,j)元素上。地节点相关的操作将被忽略。
	StampMatrix(i, j graph.NodeIndex, value complex128)

	// StampMatrixSet 直接设置矩阵A的(i,j)元素的值，覆盖原有值。地节点相关的操作将被忽略。
	StampMatrixSet(i, j graph.NodeIndex, v complex128)

	// StampRightSide 将一个值加到向量Z的第i个元素上。地节点相关的操作将被忽略。
	StampRightSide(i graph.NodeIndex, value complex128)

	// StampRightSideSet 直接设置向量Z的第i个元素的值，覆盖原有值。地节点相关的操作将被忽略。
	StampRightSideSet(i graph.NodeIndex, v complex128)

	// StampAdmittance 为导纳元件添加MNA加盖。
	// 数学模型: 在矩阵A的对角元(n1,n1)和(n2,n2)加上y，非对角元(n1,n2)和(n2,n1)减去y。
	//   n1, n2: 元件两端节点。
	//   y:      复导纳。
	StampAdmittance(n1, n2 graph.NodeIndex, y complex128)

	// StampImpedance 为阻抗元件添加MNA加盖, 内部换算为 y=1/z。
	StampImpedance(n1, n2 graph.NodeIndex, z complex128)

	// StampCurrentSource 为独立电流源添加MNA加盖。
	// 数学模型: 从n1抽出电流并注入n2，在向量Z的n1位置减去i，n2位置加上i。
	StampCurrentSource(n1, n2 graph.NodeIndex, i complex128)

	// StampVoltageSource 为独立电压源添加MNA加盖。
	// 数学模型: 引入电流I(vs)作为新变量，建立约束 V(n1)-V(n2)=v。
	//   n1: 电压源的正极节点。
	//   n2: 电压源的负极节点。
	//   vs: 电压源编号。
	//   v:  电压相量。
	StampVoltageSource(n1, n2 graph.NodeIndex, vs VoltageID, v complex128)
}
