package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NetList 网表一行拆分后的字段
type NetList []string

// FromLine 按空白拆分一行网表
func FromLine(line string) NetList {
	return NetList(strings.Fields(line))
}

// String 还原为一行
func (value NetList) String() string {
	return strings.Join(value, " ")
}

// ParseValue 解析带工程单位后缀的数值
func (value NetList) ParseValue(i int) (float64, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("missing field %d", i+1)
	}
	return ParseSI(value[i])
}

// ParseValueDefault 解析数值, 字段缺失时返回默认值
func (value NetList) ParseValueDefault(i int, defaultValue float64) (float64, error) {
	if i >= len(value) {
		return defaultValue, nil
	}
	return ParseSI(value[i])
}

// IsValue 字段是否为数值
func (value NetList) IsValue(i int) bool {
	if i >= len(value) {
		return false
	}
	_, err := ParseSI(value[i])
	return err == nil
}

// FormatFloat 完整精度输出, 保证读回后数值不变
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
