// Package web 内嵌 HTML 模板
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Funcs 模板函数
var Funcs = template.FuncMap{
	// percent 进度条宽度，封顶 100
	"percent": func(n int64, total int) int {
		if total <= 0 {
			return 0
		}
		p := int(n * 100 / int64(total))
		if p > 100 {
			p = 100
		}
		return p
	},
}

// Templates 解析全部页面模板，模板名即文件名（如 events.html）
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
}
