package load

import (
	"accircuit/types"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format 电路文件格式
type Format int

const (
	FormatNetlist Format = iota // 行式网表(.net .cir .sp 或其它)
	FormatTOML                  // TOML(.toml)
)

// String 格式名称
func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "netlist"
}

// FormatOf 按扩展名判断格式
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatNetlist
}

// ReadFile 按扩展名加载电路文件
func ReadFile(path string) (*types.Network, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var net *types.Network
	switch FormatOf(path) {
	case FormatTOML:
		net, err = ReadTOML(file)
	default:
		net, err = ReadNetlist(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}

// WriteFile 按扩展名导出电路文件
func WriteFile(path string, net *types.Network) (err error) {
	var buf bytes.Buffer
	switch FormatOf(path) {
	case FormatTOML:
		err = WriteTOML(&buf, net)
	default:
		err = WriteNetlist(&buf, net)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
