package analysis

import (
	"accircuit/maths"
	"accircuit/types"
	"errors"
	"fmt"
	"strings"
)

// ErrNumericalFault 解中出现 NaN/Inf, 或求解过程异常
var ErrNumericalFault = errors.New("numerical fault")

// SingularSystemError 方程奇异, 没有唯一解
// Floating 为没有通路连接到地的节点分组, 可能为空。
type SingularSystemError struct {
	Floating [][]types.NodeID
}

func (e *SingularSystemError) Error() string {
	if len(e.Floating) == 0 {
		return "singular system"
	}
	groups := make([]string, len(e.Floating))
	for i, group := range e.Floating {
		names := make([]string, len(group))
		for j, id := range group {
			names[j] = string(id)
		}
		groups[i] = "[" + strings.Join(names, " ") + "]"
	}
	return fmt.Sprintf("singular system: floating nodes %s", strings.Join(groups, ", "))
}

// Unwrap 返回 maths.ErrSingular
func (e *SingularSystemError) Unwrap() error { return maths.ErrSingular }
