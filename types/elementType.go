package types

import (
	"fmt"
	"strings"
)

// ElementType 无源元件类型
type ElementType int

// 电路元件类型常量定义
const (
	TypeUnknown   ElementType = iota // 未知类型
	TypeResistor                     // 电阻
	TypeCapacitor                    // 电容
	TypeInductor                     // 电感
)

// slementTypeString 元件映射
var slementTypeString = map[ElementType]struct {
	Name   string // 名称
	Prefix string // 网表前缀
	Unit   string // 单位
}{
	TypeUnknown:   {Name: "Unknown"},
	TypeResistor:  {Name: "Resistor", Prefix: "R", Unit: "Ω"},
	TypeCapacitor: {Name: "Capacitor", Prefix: "C", Unit: "F"},
	TypeInductor:  {Name: "Inductor", Prefix: "L", Unit: "H"},
}

// String 返回元件类型的字符串表示
func (t ElementType) String() string {
	if et, ok := slementTypeString[t]; ok {
		return et.Name
	}
	return "Unknown"
}

// Prefix 网表名称前缀
func (t ElementType) Prefix() string { return slementTypeString[t].Prefix }

// Unit 元件值单位
func (t ElementType) Unit() string { return slementTypeString[t].Unit }

// IsValid 是否为已知的无源元件
func (t ElementType) IsValid() bool {
	return t == TypeResistor || t == TypeCapacitor || t == TypeInductor
}

// MarshalText 文本序列化
func (t ElementType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown element type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText 文本反序列化
func (t *ElementType) UnmarshalText(b []byte) error {
	et := GetNameType(string(b))
	if et == TypeUnknown {
		et = GetPrefixType(string(b))
	}
	if et == TypeUnknown {
		return fmt.Errorf("unknown element type %q", string(b))
	}
	*t = et
	return nil
}

var mapName = map[string]ElementType{
	"resistor":  TypeResistor,
	"capacitor": TypeCapacitor,
	"inductor":  TypeInductor,
}

// GetNameType 通过名称获取类型, 不区分大小写
func GetNameType(name string) ElementType {
	return mapName[strings.ToLower(name)]
}

// GetPrefixType 通过网表前缀获取类型
func GetPrefixType(prefix string) ElementType {
	p := strings.ToUpper(prefix)
	for t, et := range slementTypeString {
		if et.Prefix != "" && et.Prefix == p {
			return t
		}
	}
	return TypeUnknown
}

// Impedance 元件在角频率omega下的复阻抗
//
//	电阻: R
//	电容: 1/(jωC)
//	电感: jωL
func (t ElementType) Impedance(value, omega float64) complex128 {
	switch t {
	case TypeResistor:
		return complex(value, 0)
	case TypeCapacitor:
		// 直接构造纯虚数, 保证相位严格为 -90°
		return complex(0, -1/(omega*value))
	case TypeInductor:
		return complex(0, omega*value)
	}
	return 0
}

// Admittance 元件在角频率omega下的复导纳
//
//	电阻: 1/R
//	电容: jωC
//	电感: 1/(jωL)
func (t ElementType) Admittance(value, omega float64) complex128 {
	switch t {
	case TypeResistor:
		return complex(1/value, 0)
	case TypeCapacitor:
		return complex(0, omega*value)
	case TypeInductor:
		return complex(0, -1/(omega*value))
	}
	return 0
}
