package types

// 默认连接常量定义
const (
	Gnd NodeID = "GND" // 参考地节点, 电位恒为0
)

// 默认参数常量定义
var (
	DefaultFrequency = 60.0 // 没有任何源时使用的分析频率(Hz)
	AutoNodePrefix   = "N"  // 自动命名节点前缀
)
