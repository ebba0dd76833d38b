/*
Package main 读取配置文件, 创建tun虚拟网卡、写入路由 并 统计流量, 可选交互模式.

命令行参数请使用 --help / -h 查看详情，配置文件示例请参考 ../../examples/ .

如果一个命令行参数无法在标准配置中进行配置，那么它就属于高级/开发者选项，or 不推荐的选项，or 正在开发中的功能.
*/
package main

import (
	"io"

	tun_simple "github.com/e1732a364fed/tun_simple"
)

const (
	desc      = "A very simple controller of tun interfaces with traffic accounting\n"
	delimiter = "===============================\n"
)

func versionStr() string {
	return tun_simple.Versionstr()
}

func printVersion_simple(w io.StringWriter) {
	w.WriteString(versionStr())
	w.WriteString("\n")
}

// printVersion 返回的信息 可以唯一确定一个编译文件的 版本以及 平台.
func printVersion(w io.StringWriter) {

	w.WriteString(delimiter)
	printVersion_simple(w)
	w.WriteString(delimiter)

	w.WriteString(desc)

	w.WriteString("Supports tun devices on linux / darwin / freebsd\n")
	w.WriteString(delimiter)

}
