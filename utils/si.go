package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// siSuffix 工程单位后缀及其十进制指数
// 按匹配顺序排列, meg 必须在 m 之前。
var siSuffix = []struct {
	Suffix string
	Exp    int
}{
	{"meg", 6},
	{"f", -15},
	{"p", -12},
	{"n", -9},
	{"u", -6},
	{"µ", -6},
	{"μ", -6},
	{"m", -3},
	{"k", 3},
	{"g", 9},
	{"t", 12},
}

// ParseSI 解析带工程单位后缀的数值, 如 1k, 10m, 2.2u, 1meg
// 后缀不区分大小写。尾数与指数按字符串拼接后解析, 不引入额外舍入。
func ParseSI(s string) (float64, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("empty value")
	}
	for _, si := range siSuffix {
		if mantissa, ok := strings.CutSuffix(str, si.Suffix); ok && mantissa != "" {
			v, err := strconv.ParseFloat(mantissa+"e"+strconv.Itoa(si.Exp), 64)
			if err != nil || strings.ContainsAny(mantissa, "eE") {
				// 尾数自带指数时退回乘法
				m, merr := strconv.ParseFloat(mantissa, 64)
				if merr != nil {
					return 0, fmt.Errorf("invalid value %q", s)
				}
				return m * math.Pow10(si.Exp), nil
			}
			return v, nil
		}
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}

// siFormat 显示用后缀, 由大到小
var siFormat = []struct {
	Suffix string
	Scale  float64
}{
	{"T", 1e12},
	{"G", 1e9},
	{"M", 1e6},
	{"k", 1e3},
	{"", 1},
	{"m", 1e-3},
	{"µ", 1e-6},
	{"n", 1e-9},
	{"p", 1e-12},
	{"f", 1e-15},
}

// FormatSI 以工程单位显示数值, 保留 precision 位有效数字
// 仅用于显示, 文件导出使用完整精度。
func FormatSI(v float64, precision int) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', precision, 64)
	}
	abs := math.Abs(v)
	for _, si := range siFormat {
		if abs >= si.Scale*(1-1e-12) {
			return strconv.FormatFloat(v/si.Scale, 'g', precision, 64) + si.Suffix
		}
	}
	last := siFormat[len(siFormat)-1]
	return strconv.FormatFloat(v/last.Scale, 'g', precision, 64) + last.Suffix
}
