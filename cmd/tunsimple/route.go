package main

import (
	"github.com/e1732a364fed/tun_simple/utils"
)

const manualPrompt = "Please try run these commands manually(Administrator):"

//等待用户手动执行的命令列表, 交互模式里可用相应命令一键执行
var manualRunCmdsList []string

//把还需要用户手动配置的路由命令打印出来。
func promptManualRoutes() {
	strs := routeCmdSuggestions()
	if len(strs) == 0 {
		return
	}

	utils.Warn(manualPrompt)
	for _, s := range strs {
		utils.Warn(s)
	}

	manualRunCmdsList = strs
}
