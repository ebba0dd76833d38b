package main

import (
	"flag"
	"os"
)

//本文件下所有命令的输出统一使用 fmt 而不是 log

var (
	interactive_mode bool
	cmdPrintVer      bool
)

func init() {
	flag.BoolVar(&interactive_mode, "i", false, "enable interactive commandline mode")
	flag.BoolVar(&cmdPrintVer, "v", false, "print the version string then exit")

	//cmd.go 中定义的 CliCmd都是直接返回运行结果的、无需进一步交互的命令

	cliCmdList = append(cliCmdList, &CliCmd{
		"查询当前状态", func() {
			mainM.PrintAllState(os.Stdout)
		},
	})

}

//是否可以在运行时动态修改配置。如果没有 交互模式，则当前模式不灵活，无法动态修改
func isFlexible() bool {
	return interactive_mode
}

//运行一些 执行后立即退出程序的 命令
func runExitCommands() (atLeastOneCalled bool) {
	if cmdPrintVer {
		atLeastOneCalled = true
		printVersion_simple(os.Stdout)
	}

	return
}
