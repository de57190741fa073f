//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// mobile/data/layout.yaml 是项目根目录 data/layout.yaml 的副本，修改布局后需要同步：
//
//	cp data/layout.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/layout.yaml
var dataFS embed.FS
