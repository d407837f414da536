// Package menu 读取自助餐菜单文件（json 或 yaml）
// 文件缺失或格式错误时返回默认菜单，首页不会因此报错
package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Category 菜单分类
type Category struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// Buffet 菜单文档
type Buffet struct {
	Title      string     `json:"title" yaml:"title"`
	Note       string     `json:"note" yaml:"note"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Default 菜单文件不可用时展示的内容
func Default() *Buffet {
	return &Buffet{
		Title:      "What's Included in the 7@777 Buffet",
		Note:       "Items vary by day & location; buffet is unlimited when 7 dine together via Groupies.",
		Categories: []Category{},
	}
}

// Parse 按扩展名解析菜单，.yaml/.yml 用 yaml，其余按 json
func Parse(name string, data []byte) (*Buffet, error) {
	b := new(Buffet)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, b); err != nil {
			return nil, fmt.Errorf("解析菜单 %s 失败: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, b); err != nil {
			return nil, fmt.Errorf("解析菜单 %s 失败: %w", name, err)
		}
	}
	if b.Categories == nil {
		b.Categories = []Category{}
	}
	return b, nil
}

// Load 每次调用都重新读取文件，修改菜单无需重启
func Load(path string) *Buffet {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			zap.L().Warn("读取菜单失败，使用默认菜单", zap.String("path", path), zap.Error(err))
		}
		return Default()
	}
	b, err := Parse(path, data)
	if err != nil {
		zap.L().Warn("菜单格式错误，使用默认菜单", zap.String("path", path), zap.Error(err))
		return Default()
	}
	return b
}

// Loader Handler 依赖的菜单来源
type Loader interface {
	Load() *Buffet
}

// FileLoader 从固定路径读取
type FileLoader string

func (p FileLoader) Load() *Buffet {
	return Load(string(p))
}
