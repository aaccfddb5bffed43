// Package ast 提供电路网表的解析树。
// 网表按行组织, 支持元件/源定义、点命令和注释,
// 解析结果只做词法与结构检查, 语义检查由 load 完成。
package ast

import (
	"accircuit/utils"
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// 点命令与注释标记
const (
	tokenNode              = ".node"  // 节点声明
	tokenValue             = ".value" // 值设置命令
	tokenEnd               = ".end"   // 网表结束
	tokenVar               = "%"      // 变量引用前缀
	tokenCommentHash       = "#"      // # 注释
	tokenCommentStar       = "*"      // * 行首注释
	tokenCommentLine       = "//"     // // 行注释
	tokenCommentBlockStart = "/*"     // /* 块注释开始
	tokenCommentBlockEnd   = "*/"     // */ 块注释结束
)

// ErrSyntax 网表语法错误
var ErrSyntax = errors.New("syntax error")

// ElementNode 元件或源定义行
type ElementNode struct {
	Name   string        // 名称, 如 R1
	Fields utils.NetList // 名称之后的字段, 变量已替换
	Line   int           // 行号
}

// NodeNode 节点声明
type NodeNode struct {
	Name string
	Line int
}

// CommentNode 注释
type CommentNode struct {
	Text string // 注释文本
	Line int    // 行号
}

// ParseTree 解析树
type ParseTree struct {
	ElementNodes []*ElementNode    // 元件列表, 按出现顺序
	NodeNodes    []*NodeNode       // 节点声明
	CommentNodes []*CommentNode    // 注释列表
	ValueNodes   map[string]string // 变量列表
}

// String 调试输出
func (parseTree *ParseTree) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d elements, %d nodes, %d values, %d comments\n",
		len(parseTree.ElementNodes), len(parseTree.NodeNodes), len(parseTree.ValueNodes), len(parseTree.CommentNodes))
	for _, n := range parseTree.ElementNodes {
		fmt.Fprintf(&sb, "  %d: %s %s\n", n.Line, n.Name, n.Fields)
	}
	return sb.String()
}

// NewParseTree 生成网表解析树
func NewParseTree(r io.Reader) (*ParseTree, error) {
	parseTree := &ParseTree{ValueNodes: map[string]string{}}
	scanner := bufio.NewScanner(r)
	lineNum, inBlock := 0, false
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		// 块注释可以跨行
		if inBlock {
			end := strings.Index(line, tokenCommentBlockEnd)
			if end < 0 {
				parseTree.comment(line, lineNum)
				continue
			}
			parseTree.comment(line[:end], lineNum)
			line, inBlock = line[end+len(tokenCommentBlockEnd):], false
		}
		line, inBlock = parseTree.stripComments(line, lineNum)
		fields := utils.FromLine(line)
		if len(fields) == 0 {
			continue
		}
		head := strings.ToLower(fields[0])
		if strings.HasPrefix(head, ".") {
			done, err := parseTree.parseCommand(head, fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			if done {
				break
			}
			continue
		}
		if !isLetter(fields[0][0]) {
			return nil, errorAtLine(lineNum, "unexpected token %q", fields[0])
		}
		parseTree.ElementNodes = append(parseTree.ElementNodes, &ElementNode{
			Name:   fields[0],
			Fields: fields[1:],
			Line:   lineNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read netlist: %w", err)
	}
	if inBlock {
		return nil, errorAtLine(lineNum, "unterminated block comment")
	}
	if err := parseTree.resolve(); err != nil {
		return nil, err
	}
	return parseTree, nil
}

func (parseTree *ParseTree) comment(text string, lineNum int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	parseTree.CommentNodes = append(parseTree.CommentNodes, &CommentNode{Text: text, Line: lineNum})
}

// stripComments 去除一行中的注释, 返回剩余内容以及块注释是否延续到下一行
func (parseTree *ParseTree) stripComments(line string, lineNum int) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, tokenCommentStar) {
		parseTree.comment(trimmed[len(tokenCommentStar):], lineNum)
		return "", false
	}
	var sb strings.Builder
	for {
		hash := strings.Index(line, tokenCommentHash)
		slash := strings.Index(line, tokenCommentLine)
		block := strings.Index(line, tokenCommentBlockStart)
		first, kind := -1, ""
		for _, c := range []struct {
			at   int
			kind string
		}{{hash, tokenCommentHash}, {slash, tokenCommentLine}, {block, tokenCommentBlockStart}} {
			if c.at >= 0 && (first < 0 || c.at < first) {
				first, kind = c.at, c.kind
			}
		}
		if first < 0 {
			sb.WriteString(line)
			return sb.String(), false
		}
		sb.WriteString(line[:first])
		rest := line[first+len(kind):]
		if kind != tokenCommentBlockStart {
			parseTree.comment(rest, lineNum)
			return sb.String(), false
		}
		end := strings.Index(rest, tokenCommentBlockEnd)
		if end < 0 {
			parseTree.comment(rest, lineNum)
			return sb.String(), true
		}
		parseTree.comment(rest[:end], lineNum)
		sb.WriteByte(' ')
		line = rest[end+len(tokenCommentBlockEnd):]
	}
}

// parseCommand 解析点命令, done 表示遇到 .end
func (parseTree *ParseTree) parseCommand(cmd string, args utils.NetList, lineNum int) (done bool, err error) {
	switch cmd {
	case tokenNode:
		if len(args) == 0 {
			return false, errorAtLine(lineNum, ".node requires at least one name")
		}
		for _, name := range args {
			parseTree.NodeNodes = append(parseTree.NodeNodes, &NodeNode{Name: name, Line: lineNum})
		}
	case tokenValue:
		if len(args) != 2 {
			return false, errorAtLine(lineNum, ".value requires a name and a value")
		}
		parseTree.ValueNodes[args[0]] = args[1]
	case tokenEnd:
		return true, nil
	default:
		return false, errorAtLine(lineNum, "unknown command %q", cmd)
	}
	return false, nil
}

// resolve 替换元件字段中的 %NAME 变量引用
func (parseTree *ParseTree) resolve() error {
	for _, n := range parseTree.ElementNodes {
		for i, field := range n.Fields {
			name, ok := strings.CutPrefix(field, tokenVar)
			if !ok {
				continue
			}
			v, ok := parseTree.ValueNodes[name]
			if !ok {
				return errorAtLine(n.Line, "undefined value %q", name)
			}
			n.Fields[i] = v
		}
	}
	return nil
}

// errorAtLine 生成带行号的错误信息
func errorAtLine(lineNum int, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", lineNum, ErrSyntax, fmt.Sprintf(format, args...))
}

// isLetter 检查是否是字母
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
